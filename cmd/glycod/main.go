//go:generate go run github.com/Songmu/gocredits/cmd/gocredits@v0.3.0 -w
package main

import (
	"context"
	_ "embed"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/glyco-ml/glyco/cmd/glycod/handlers"
	"github.com/glyco-ml/glyco/pkg/model"
	"github.com/glyco-ml/glyco/pkg/utils/echoutil"
	"github.com/glyco-ml/glyco/pkg/utils/filewatch"
)

//go:embed CREDITS
var CREDITS string

func main() {

	modelPath := flag.String("model-path", "./model.json", "path to the model artifact to serve")
	port := flag.String("port", "8080", "port to listen on")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	plic := flag.Bool("license", false, "show licenses of dependencies")
	flag.Parse()

	if *plic {
		log.Println(CREDITS)
		return
	}

	artifact, err := model.LoadArtifact(*modelPath)
	if err != nil {
		log.Fatalf("can not load model artifact: %s", err)
	}
	log.Printf(
		"model loaded: %s (trained at %s, %d features)",
		*modelPath, artifact.TrainedAt, len(artifact.Model.Columns),
	)

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// quit when the artifact is retrained, so the supervisor
	// restarts us with the new model.
	ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *modelPath)
	if err != nil {
		log.Fatalf("can not watch model artifact: %s", err)
	}
	defer cancel()
	context.AfterFunc(ctx, func() {
		log.Println("model artifact is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown by model artifact update: %s", err)
		}
	})

	e.POST("/score/", handlers.ScoreHandler(artifact))
	e.GET("/health/", handlers.HealthHandler(artifact))
	e.RouteNotFound("/*", handlers.RouteNotFound())

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+*port, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + *port))
	}
}
