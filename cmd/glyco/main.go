//go:generate go run github.com/Songmu/gocredits/cmd/gocredits@v0.3.0 -w
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/youta-t/flarc"

	subcheck "github.com/glyco-ml/glyco/cmd/glyco/subcommands/check"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	subendpoint "github.com/glyco-ml/glyco/cmd/glyco/subcommands/endpoint"
	subinit "github.com/glyco-ml/glyco/cmd/glyco/subcommands/init"
	sublic "github.com/glyco-ml/glyco/cmd/glyco/subcommands/license"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/logger"
	subpipeline "github.com/glyco-ml/glyco/cmd/glyco/subcommands/pipeline"
	subprovision "github.com/glyco-ml/glyco/cmd/glyco/subcommands/provision"
	subtrain "github.com/glyco-ml/glyco/cmd/glyco/subcommands/train"
	subver "github.com/glyco-ml/glyco/cmd/glyco/subcommands/version"
	"github.com/glyco-ml/glyco/pkg/utils/try"
)

//go:embed CREDITS
var CREDITS string

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	train := try.To(subtrain.New()).OrFatal(logger)
	endpoint := try.To(subendpoint.New()).OrFatal(logger)
	provision := try.To(subprovision.New()).OrFatal(logger)
	pipeline := try.To(subpipeline.New()).OrFatal(logger)
	check := try.To(subcheck.New()).OrFatal(logger)
	license := try.To(sublic.New(CREDITS)).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	glyco := try.To(
		flarc.NewCommandGroup(
			"Glyco Commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("train", train),
			flarc.WithSubcommand("endpoint", endpoint),
			flarc.WithSubcommand("provision", provision),
			flarc.WithSubcommand("pipeline", pipeline),
			flarc.WithSubcommand("check", check),
			flarc.WithSubcommand("license", license),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, glyco, flarc.WithHelp(true)))
}
