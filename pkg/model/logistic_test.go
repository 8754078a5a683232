package model_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/glyco-ml/glyco/pkg/model"
	"github.com/glyco-ml/glyco/pkg/utils/try"
)

// separable two-feature set: label is 1 iff the first feature is large.
func separableSet(n int, seed int64) (x [][]float64, y []float64) {
	rng := rand.New(rand.NewSource(seed))
	x = make([][]float64, n)
	y = make([]float64, n)
	for i := range x {
		if i%2 == 0 {
			x[i] = []float64{10 + rng.Float64(), rng.Float64()}
			y[i] = 1
		} else {
			x[i] = []float64{-10 - rng.Float64(), rng.Float64()}
			y[i] = 0
		}
	}
	return x, y
}

func TestFit(t *testing.T) {
	columns := []string{"F1", "F2"}

	t.Run("it separates a linearly separable set", func(t *testing.T) {
		x, y := separableSet(40, 1)

		m := try.To(model.Fit(columns, x, y, 0.01)).OrFatal(t)

		pred := try.To(m.Predict(x)).OrFatal(t)
		if acc := model.Accuracy(y, pred); acc < 0.99 {
			t.Errorf("unexpected accuracy on training set: %f", acc)
		}
	})

	t.Run("it predicts only classes 0 and 1", func(t *testing.T) {
		x, y := separableSet(20, 2)
		m := try.To(model.Fit(columns, x, y, 0.05)).OrFatal(t)

		pred := try.To(m.Predict(x)).OrFatal(t)
		if len(pred) != len(x) {
			t.Fatalf("unexpected prediction count: %d", len(pred))
		}
		for i, p := range pred {
			if p != 0 && p != 1 {
				t.Errorf("prediction %d is out of {0, 1}: %d", i, p)
			}
		}
	})

	t.Run("different regularization rates give different weights", func(t *testing.T) {
		x, y := separableSet(40, 3)

		weak := try.To(model.Fit(columns, x, y, 0.001)).OrFatal(t)
		strong := try.To(model.Fit(columns, x, y, 10.0)).OrFatal(t)

		same := true
		for j := range weak.Weights {
			if weak.Weights[j] != strong.Weights[j] {
				same = false
				break
			}
		}
		if same {
			t.Error("weights are identical under different regularization")
		}
	})

	t.Run("it invokes the epoch callback once per epoch", func(t *testing.T) {
		x, y := separableSet(10, 4)

		count := 0
		last := 0
		try.To(model.Fit(
			columns, x, y, 0.01,
			model.WithEpochs(17),
			model.WithEpochCallback(func(done, total int) {
				count++
				last = done
				if total != 17 {
					t.Errorf("unexpected total: %d", total)
				}
			}),
		)).OrFatal(t)

		if count != 17 || last != 17 {
			t.Errorf("unexpected callback count: %d (last done: %d)", count, last)
		}
	})

	t.Run("when the training set is empty, it fails with ErrEmptyTrainingSet", func(t *testing.T) {
		_, err := model.Fit(columns, nil, nil, 0.01)
		if !errors.Is(err, model.ErrEmptyTrainingSet) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when a label is out of {0, 1}, it fails with ErrBadLabel", func(t *testing.T) {
		_, err := model.Fit(columns, [][]float64{{1, 2}}, []float64{2}, 0.01)
		if !errors.Is(err, model.ErrBadLabel) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when rows are ragged, it fails with ErrRaggedMatrix", func(t *testing.T) {
		_, err := model.Fit(columns, [][]float64{{1, 2}, {1}}, []float64{0, 1}, 0.01)
		if !errors.Is(err, model.ErrRaggedMatrix) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMetrics(t *testing.T) {
	t.Run("Accuracy counts matching predictions", func(t *testing.T) {
		acc := model.Accuracy([]float64{0, 1, 1, 0}, []int{0, 1, 0, 0})
		if acc != 0.75 {
			t.Errorf("unexpected accuracy: %f", acc)
		}
	})

	t.Run("AUC is 1 for perfectly ranked scores", func(t *testing.T) {
		auc := model.AUC([]float64{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9})
		if auc != 1.0 {
			t.Errorf("unexpected AUC: %f", auc)
		}
	})

	t.Run("AUC is 0.5 for uniform scores", func(t *testing.T) {
		auc := model.AUC([]float64{0, 1, 0, 1}, []float64{0.5, 0.5, 0.5, 0.5})
		if auc != 0.5 {
			t.Errorf("unexpected AUC: %f", auc)
		}
	})

	t.Run("AUC is 0 for inverted ranking", func(t *testing.T) {
		auc := model.AUC([]float64{1, 1, 0, 0}, []float64{0.1, 0.2, 0.8, 0.9})
		if auc != 0.0 {
			t.Errorf("unexpected AUC: %f", auc)
		}
	})
}

func TestArtifact(t *testing.T) {
	columns := []string{"F1", "F2"}

	t.Run("a saved artifact loads back and predicts identically", func(t *testing.T) {
		x, y := separableSet(30, 5)
		m := try.To(model.Fit(columns, x, y, 0.01)).OrFatal(t)

		path := filepath.Join(t.TempDir(), model.ArtifactFilename)
		if err := (model.Artifact{Model: *m}).Save(path); err != nil {
			t.Fatal(err)
		}

		loaded := try.To(model.LoadArtifact(path)).OrFatal(t)

		want := try.To(m.Predict(x)).OrFatal(t)
		got := try.To(loaded.Model.Predict(x)).OrFatal(t)
		for i := range want {
			if want[i] != got[i] {
				t.Errorf("prediction %d changed after reload: %d != %d", i, want[i], got[i])
			}
		}
	})

	t.Run("when the artifact file is not JSON, loading fails with ErrMalformedArtifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), model.ArtifactFilename)
		if err := os.WriteFile(path, []byte("not a model"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := model.LoadArtifact(path)
		if !errors.Is(err, model.ErrMalformedArtifact) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("when shapes are inconsistent, loading fails with ErrMalformedArtifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), model.ArtifactFilename)
		if err := os.WriteFile(
			path,
			[]byte(`{"model": {"columns": ["A", "B"], "means": [0], "stds": [1, 1], "weights": [1, 2]}}`),
			0644,
		); err != nil {
			t.Fatal(err)
		}

		_, err := model.LoadArtifact(path)
		if !errors.Is(err, model.ErrMalformedArtifact) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
