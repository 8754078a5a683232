package pipeline

import (
	"context"
	"os/exec"
)

// Stage results recorded by Run.
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	ResultSkipped   = "skipped"
)

// StageResult is the outcome of one stage of a pipeline run.
type StageResult struct {
	Stage  string
	Result string
	Err    error
}

// Executor runs the command of a single stage.
type Executor func(ctx context.Context, stage Stage) error

// ShellExecutor runs a stage command via `sh -c`.
func ShellExecutor(ctx context.Context, stage Stage) error {
	return exec.CommandContext(ctx, "sh", "-c", stage.Run).Run()
}

// Run executes the pipeline in topological order.
//
// When a stage fails, stages depending on it (directly or not) are
// skipped, but independent stages still run. The returned slice has
// one entry per stage in execution order; ok is true iff every stage
// succeeded.
func (p *Pipeline) Run(ctx context.Context, exe Executor) (results []StageResult, ok bool, err error) {
	order, err := p.Order()
	if err != nil {
		return nil, false, err
	}

	failed := map[string]bool{}
	ok = true
	for _, stage := range order {
		if err := ctx.Err(); err != nil {
			return results, false, err
		}

		blocked := false
		for _, need := range stage.Needs {
			if failed[need] {
				blocked = true
				break
			}
		}
		if blocked {
			failed[stage.Name] = true
			ok = false
			results = append(results, StageResult{Stage: stage.Name, Result: ResultSkipped})
			continue
		}

		if err := exe(ctx, stage); err != nil {
			failed[stage.Name] = true
			ok = false
			results = append(results, StageResult{Stage: stage.Name, Result: ResultFailed, Err: err})
			continue
		}
		results = append(results, StageResult{Stage: stage.Name, Result: ResultSucceeded})
	}
	return results, ok, nil
}
