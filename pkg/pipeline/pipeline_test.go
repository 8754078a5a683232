package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glyco-ml/glyco/pkg/pipeline"
	"github.com/glyco-ml/glyco/pkg/utils/cmp"
	"github.com/glyco-ml/glyco/pkg/utils/slices"
	"github.com/glyco-ml/glyco/pkg/utils/try"
)

func TestValidate(t *testing.T) {
	type When struct {
		pipeline pipeline.Pipeline
	}
	type Then struct {
		err error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			err := when.pipeline.Validate()
			if !errors.Is(err, then.err) {
				t.Errorf("unexpected error: %v (want: %v)", err, then.err)
			}
		}
	}

	t.Run("a linear chain is valid", theory(
		When{
			pipeline: pipeline.Pipeline{
				Name: "ci",
				Stages: []pipeline.Stage{
					{Name: "lint", Run: "true"},
					{Name: "unit-test", Needs: []string{"lint"}, Run: "true"},
					{Name: "train", Needs: []string{"unit-test"}, Run: "true"},
					{Name: "deploy", Needs: []string{"train"}, Run: "true"},
				},
			},
		},
		Then{err: nil},
	))

	t.Run("an empty pipeline is rejected", theory(
		When{pipeline: pipeline.Pipeline{Name: "empty"}},
		Then{err: pipeline.ErrNoStages},
	))

	t.Run("duplicate stage names are rejected", theory(
		When{
			pipeline: pipeline.Pipeline{
				Name: "dup",
				Stages: []pipeline.Stage{
					{Name: "lint", Run: "true"},
					{Name: "lint", Run: "true"},
				},
			},
		},
		Then{err: pipeline.ErrDuplicate},
	))

	t.Run("a dependency on an unknown stage is rejected", theory(
		When{
			pipeline: pipeline.Pipeline{
				Name: "dangling",
				Stages: []pipeline.Stage{
					{Name: "deploy", Needs: []string{"train"}, Run: "true"},
				},
			},
		},
		Then{err: pipeline.ErrUnknownStage},
	))

	t.Run("a cycle is rejected", theory(
		When{
			pipeline: pipeline.Pipeline{
				Name: "cyclic",
				Stages: []pipeline.Stage{
					{Name: "a", Needs: []string{"b"}, Run: "true"},
					{Name: "b", Needs: []string{"a"}, Run: "true"},
				},
			},
		},
		Then{err: pipeline.ErrCycle},
	))
}

func TestOrder(t *testing.T) {
	t.Run("dependencies come before their dependents", func(t *testing.T) {
		p := pipeline.Pipeline{
			Name: "ci",
			Stages: []pipeline.Stage{
				{Name: "deploy", Needs: []string{"train"}, Run: "true"},
				{Name: "train", Needs: []string{"lint", "unit-test"}, Run: "true"},
				{Name: "unit-test", Needs: []string{"lint"}, Run: "true"},
				{Name: "lint", Run: "true"},
			},
		}

		order := try.To(p.Order()).OrFatal(t)

		got := slices.Map(order, func(s pipeline.Stage) string { return s.Name })
		if !cmp.SliceEq(got, []string{"lint", "unit-test", "train", "deploy"}) {
			t.Errorf("unexpected order: %v", got)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("all stages run in order when each succeeds", func(t *testing.T) {
		p := pipeline.Pipeline{
			Name: "ci",
			Stages: []pipeline.Stage{
				{Name: "lint", Run: "lint"},
				{Name: "unit-test", Needs: []string{"lint"}, Run: "test"},
				{Name: "train", Needs: []string{"unit-test"}, Run: "train"},
				{Name: "deploy", Needs: []string{"train"}, Run: "deploy"},
			},
		}

		ran := []string{}
		exe := func(ctx context.Context, stage pipeline.Stage) error {
			ran = append(ran, stage.Name)
			return nil
		}

		results, ok, err := p.Run(context.Background(), exe)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Error("the run is not ok")
		}
		if !cmp.SliceEq(ran, []string{"lint", "unit-test", "train", "deploy"}) {
			t.Errorf("unexpected execution order: %v", ran)
		}
		for _, r := range results {
			if r.Result != pipeline.ResultSucceeded {
				t.Errorf("stage %s: unexpected result %s", r.Stage, r.Result)
			}
		}
	})

	t.Run("a failed stage skips its dependents but not independent stages", func(t *testing.T) {
		p := pipeline.Pipeline{
			Name: "ci",
			Stages: []pipeline.Stage{
				{Name: "lint", Run: "lint"},
				{Name: "unit-test", Run: "test"},
				{Name: "train", Needs: []string{"lint", "unit-test"}, Run: "train"},
				{Name: "deploy", Needs: []string{"train"}, Run: "deploy"},
			},
		}

		fail := errors.New("fake failure")
		exe := func(ctx context.Context, stage pipeline.Stage) error {
			if stage.Name == "unit-test" {
				return fail
			}
			return nil
		}

		results, ok, err := p.Run(context.Background(), exe)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("the run is unexpectedly ok")
		}

		byStage := map[string]pipeline.StageResult{}
		for _, r := range results {
			byStage[r.Stage] = r
		}
		if byStage["lint"].Result != pipeline.ResultSucceeded {
			t.Errorf("lint: unexpected result %s", byStage["lint"].Result)
		}
		if byStage["unit-test"].Result != pipeline.ResultFailed {
			t.Errorf("unit-test: unexpected result %s", byStage["unit-test"].Result)
		}
		if !errors.Is(byStage["unit-test"].Err, fail) {
			t.Errorf("unit-test: unexpected error %v", byStage["unit-test"].Err)
		}
		if byStage["train"].Result != pipeline.ResultSkipped {
			t.Errorf("train: unexpected result %s", byStage["train"].Result)
		}
		if byStage["deploy"].Result != pipeline.ResultSkipped {
			t.Errorf("deploy: unexpected result %s", byStage["deploy"].Result)
		}
	})

	t.Run("a cancelled context stops the run", func(t *testing.T) {
		p := pipeline.Pipeline{
			Name:   "ci",
			Stages: []pipeline.Stage{{Name: "lint", Run: "lint"}},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := p.Run(ctx, func(context.Context, pipeline.Stage) error { return nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("a yaml definition loads and validates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		def := `
name: diabetes-classification
stages:
  - name: lint
    run: flake8 .
  - name: unit-test
    needs: [lint]
    run: pytest -m "not integration"
  - name: train
    needs: [unit-test]
    run: glyco train --training-data ./data
  - name: deploy
    needs: [train]
    run: glyco endpoint deploy
`
		if err := os.WriteFile(path, []byte(def), 0644); err != nil {
			t.Fatal(err)
		}

		p := try.To(pipeline.Load(path)).OrFatal(t)

		if p.Name != "diabetes-classification" {
			t.Errorf("unexpected name: %s", p.Name)
		}
		if len(p.Stages) != 4 {
			t.Errorf("unexpected stage count: %d", len(p.Stages))
		}
		if !cmp.SliceEq(p.Stages[2].Needs, []string{"unit-test"}) {
			t.Errorf("unexpected needs: %v", p.Stages[2].Needs)
		}
	})

	t.Run("an invalid graph fails to load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		def := `
name: broken
stages:
  - name: deploy
    needs: [train]
    run: glyco endpoint deploy
`
		if err := os.WriteFile(path, []byte(def), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := pipeline.Load(path)
		if !errors.Is(err, pipeline.ErrUnknownStage) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
