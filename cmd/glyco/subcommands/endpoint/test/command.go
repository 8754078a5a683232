package test

import (
	"context"
	"fmt"
	"log"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/rest"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
	"github.com/glyco-ml/glyco/pkg/dataset"
)

type Flags struct {
	EndpointName  string `flag:"endpoint-name" help:"name of the online endpoint to invoke"`
	ResourceGroup string `flag:"resource-group" help:"resource group of the workspace. Default: glycoenv."`
	WorkspaceName string `flag:"workspace-name" help:"workspace holding the endpoint. Default: glycoenv."`
	TestData      string `flag:"test-data" metavar:"FILE" help:"CSV file with sample feature rows"`
	Rows          int    `flag:"rows" help:"number of rows to send. 0 sends every row of --test-data."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"send sample rows to an online endpoint and print its predictions.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Read feature rows from --test-data, send them to the endpoint named by
--endpoint-name and print one prediction (0 or 1) per row, in input order.

Example:

    {{ .Command }} --endpoint-name diabetes-ep --test-data ./data/sample.csv
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		glycoEnv env.GlycoEnv,
		client rest.GlycoClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		if flags.EndpointName == "" {
			return fmt.Errorf("%w: --endpoint-name is required", flarc.ErrUsage)
		}
		if flags.TestData == "" {
			return fmt.Errorf("%w: --test-data is required", flarc.ErrUsage)
		}
		ws := common.WorkspaceFor(glycoEnv, flags.ResourceGroup, flags.WorkspaceName)
		if ws.ResourceGroup == "" || ws.Name == "" {
			return fmt.Errorf(
				"%w: workspace is not identified. Pass --resource-group and --workspace-name or set them in glycoenv",
				flarc.ErrUsage,
			)
		}

		table, err := dataset.LoadFile(flags.TestData)
		if err != nil {
			return err
		}
		features, err := table.Select(dataset.FeatureColumns)
		if err != nil {
			return err
		}

		rows := features.Rows
		if 0 < flags.Rows && flags.Rows < len(rows) {
			rows = rows[:flags.Rows]
		}
		if len(rows) == 0 {
			return fmt.Errorf("%s has no rows to send", flags.TestData)
		}

		request := inference.NewScoreRequest(features.Columns, rows)
		logger.Printf(
			"sending %d rows to endpoint %s in workspace %s",
			len(rows), flags.EndpointName, ws.Name,
		)

		resp, err := client.Score(ctx, ws, flags.EndpointName, request)
		if err != nil {
			return err
		}
		if len(resp.Predictions) != len(rows) {
			return fmt.Errorf(
				"endpoint %s returned %d predictions for %d rows",
				flags.EndpointName, len(resp.Predictions), len(rows),
			)
		}

		for i, p := range resp.Predictions {
			fmt.Fprintf(cl.Stdout(), "Patient %d: %s\n", i+1, diagnosis(p))
		}
		return nil
	}
}

func diagnosis(prediction int) string {
	if prediction == 1 {
		return "diabetic (1)"
	}
	return "not-diabetic (0)"
}
