package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrChecksFailed is returned by Run when any required step failed.
var ErrChecksFailed = errors.New("some checks failed")

// ErrToolMissing marks a step failure caused by an absent tool.
//
// Optional steps failing with this error are recorded as skipped
// rather than failed.
var ErrToolMissing = errors.New("tool is not installed")

// Step is one verification of the local workspace.
//
// Optional steps may be skipped when their tool is missing; required
// steps fail the whole run.
type Step struct {
	Name     string
	Optional bool
	Run      func(ctx context.Context) error
}

// Step outcomes.
const (
	Passed  = "passed"
	Failed  = "failed"
	Skipped = "skipped"
)

// Result is the outcome of one step.
type Result struct {
	Step    string
	Outcome string
	Err     error
}

// Report tallies a whole run.
type Report struct {
	Results []Result
}

func (r Report) Count(outcome string) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n += 1
		}
	}
	return n
}

// Ok is true iff no step failed. Skipped optional steps do not count
// against the run.
func (r Report) Ok() bool {
	return r.Count(Failed) == 0
}

// Run executes each step in order and tallies the outcomes.
//
// All steps run even after a failure, so one invocation surfaces every
// problem at once. The error is ErrChecksFailed iff the report is not
// ok.
func Run(ctx context.Context, steps []Step) (Report, error) {
	rep := Report{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		err := step.Run(ctx)
		switch {
		case err == nil:
			rep.Results = append(rep.Results, Result{Step: step.Name, Outcome: Passed})
		case step.Optional && errors.Is(err, ErrToolMissing):
			rep.Results = append(rep.Results, Result{Step: step.Name, Outcome: Skipped, Err: err})
		default:
			rep.Results = append(rep.Results, Result{Step: step.Name, Outcome: Failed, Err: err})
		}
	}

	if !rep.Ok() {
		return rep, ErrChecksFailed
	}
	return rep, nil
}

// Command builds a step body running an external tool.
//
// When the tool is not on PATH the body fails with ErrToolMissing, so
// optional steps degrade to skipped.
func Command(name string, args ...string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%w: %s", ErrToolMissing, name)
		}
		cmd := exec.CommandContext(ctx, name, args...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%s: %w\n%s", name, err, strings.TrimSpace(string(out)))
		}
		return nil
	}
}

// RequiredFiles builds a step body asserting that each path exists.
func RequiredFiles(paths ...string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		missing := []string{}
		for _, p := range paths {
			if _, err := os.Stat(p); err != nil {
				missing = append(missing, p)
			}
		}
		if len(missing) != 0 {
			return fmt.Errorf("required files are missing: %s", strings.Join(missing, ", "))
		}
		return nil
	}
}
