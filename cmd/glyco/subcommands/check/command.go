package check

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/check"
	"github.com/glyco-ml/glyco/pkg/dataset"
	"github.com/glyco-ml/glyco/pkg/model"
)

type Flags struct {
	Data     string `flag:"data" metavar:"DIR" help:"training data directory verified by the integration check"`
	Pipeline string `flag:"pipeline" metavar:"FILE" help:"pipeline definition verified to exist"`
	Only     string `flag:"only" help:"run only the named check (lint, unit, integration, files)"`
}

const (
	defaultLint = "flake8 ."
	defaultUnit = "pytest tests"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"verify the project locally: lint, unit, integration and required files.",
		Flags{
			Data:     "./data",
			Pipeline: "./glyco.pipeline.yaml",
		},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Run every local verification and report a tally. The command exits 0
only when all checks pass.

The lint and unit commands come from glycoenv params "lint" and "unit".
A lint tool that is not installed is warned about, not failed.
`),
	)
}

func Task() common.GlycoTaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()

		glycoEnv, err := env.LoadGlycoEnv(commonFlag.Env)
		if err != nil {
			return err
		}

		steps := []check.Step{
			{
				Name:     "lint",
				Optional: true,
				Run:      commandOf(glycoEnv.Param("lint", defaultLint)),
			},
			{
				Name: "unit",
				Run:  commandOf(glycoEnv.Param("unit", defaultUnit)),
			},
			{
				Name: "integration",
				Run:  integration(flags.Data),
			},
			{
				Name: "files",
				Run:  check.RequiredFiles(commonFlag.Env, flags.Pipeline),
			},
		}

		if flags.Only != "" {
			kept := []check.Step{}
			for _, s := range steps {
				if s.Name == flags.Only {
					kept = append(kept, s)
				}
			}
			if len(kept) == 0 {
				return fmt.Errorf("%w: unknown check: %s", flarc.ErrUsage, flags.Only)
			}
			steps = kept
		}

		report, err := check.Run(ctx, steps)
		for _, r := range report.Results {
			switch r.Outcome {
			case check.Passed:
				fmt.Fprintf(cl.Stdout(), "PASS\t%s\n", r.Step)
			case check.Skipped:
				fmt.Fprintf(cl.Stdout(), "SKIP\t%s\n", r.Step)
				logger.Printf("check %s is skipped: %s", r.Step, r.Err)
			case check.Failed:
				fmt.Fprintf(cl.Stdout(), "FAIL\t%s\n", r.Step)
				logger.Printf("check %s failed: %s", r.Step, r.Err)
			}
		}
		fmt.Fprintf(
			cl.Stdout(), "%d passed, %d failed, %d skipped\n",
			report.Count(check.Passed), report.Count(check.Failed), report.Count(check.Skipped),
		)
		return err
	}
}

func commandOf(commandline string) func(ctx context.Context) error {
	fields := strings.Fields(commandline)
	if len(fields) == 0 {
		return func(ctx context.Context) error {
			return fmt.Errorf("no command is configured")
		}
	}
	return check.Command(fields[0], fields[1:]...)
}

// integration smoke test: train on a small dataset and score three
// held-out rows in-process, asserting binary predictions.
func integration(dataDir string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		table, err := dataset.LoadDir(dataDir)
		if err != nil {
			return err
		}
		x, y, err := table.FeaturesLabel()
		if err != nil {
			return err
		}
		split, err := dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 0)
		if err != nil {
			return err
		}

		m, err := model.Fit(
			dataset.FeatureColumns, split.XTrain, split.YTrain, 0.01,
			model.WithEpochs(50),
		)
		if err != nil {
			return err
		}

		sample := split.XTest
		if 3 < len(sample) {
			sample = sample[:3]
		}
		pred, err := m.Predict(sample)
		if err != nil {
			return err
		}
		if len(pred) != len(sample) {
			return fmt.Errorf("scored %d rows, got %d predictions", len(sample), len(pred))
		}
		for i, p := range pred {
			if p != 0 && p != 1 {
				return fmt.Errorf("prediction %d is out of {0, 1}: %d", i, p)
			}
		}
		return nil
	}
}
