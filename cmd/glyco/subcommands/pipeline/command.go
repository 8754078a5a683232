package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/pipeline"
)

// ErrPipelineFailed is returned when any stage failed or was skipped.
var ErrPipelineFailed = errors.New("pipeline failed")

const ARG_PIPELINE_FILE = "PIPELINE_FILE"

type Command struct {
	executor pipeline.Executor
}

type Option func(*Command) *Command

func WithExecutor(exe pipeline.Executor) Option {
	return func(c *Command) *Command {
		c.executor = exe
		return c
	}
}

func New(opt ...Option) (flarc.Command, error) {
	c := &Command{
		executor: pipeline.ShellExecutor,
	}
	for _, o := range opt {
		c = o(c)
	}

	return flarc.NewCommand(
		"run a staged pipeline defined in a yaml file.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PIPELINE_FILE, Required: true,
				Help: "pipeline definition, e.g. glyco.pipeline.yaml",
			},
		},
		common.NewTaskWithCommonFlag(Task(c.executor)),
		flarc.WithDescription(`
Run the stages of the given pipeline in dependency order. Stages whose
"needs" are not all succeeded are skipped. The command fails unless every
stage succeeds.

Example definition:

    name: diabetes-classification
    stages:
      - name: lint
        run: glyco check --only lint
      - name: unit-test
        needs: [lint]
        run: glyco check --only unit
      - name: train
        needs: [unit-test]
        run: glyco train --training-data ./data
      - name: deploy
        needs: [train]
        run: glyco provision --dry-run
`),
	)
}

func Task(exe pipeline.Executor) common.GlycoTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		path := cl.Args()[ARG_PIPELINE_FILE][0]

		p, err := pipeline.Load(path)
		if err != nil {
			if errors.Is(err, pipeline.ErrCycle) || errors.Is(err, pipeline.ErrUnknownStage) ||
				errors.Is(err, pipeline.ErrNoStages) || errors.Is(err, pipeline.ErrDuplicate) {
				return errors.Join(flarc.ErrUsage, err)
			}
			return err
		}
		logger.Printf("pipeline %s: %d stages", p.Name, len(p.Stages))

		results, ok, err := p.Run(ctx, exe)
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				logger.Printf("stage %s: %s (%s)", r.Stage, r.Result, r.Err)
			} else {
				logger.Printf("stage %s: %s", r.Stage, r.Result)
			}
			fmt.Fprintf(cl.Stdout(), "%s\t%s\n", r.Stage, r.Result)
		}

		if !ok {
			return fmt.Errorf("%w: %s", ErrPipelineFailed, p.Name)
		}
		return nil
	}
}
