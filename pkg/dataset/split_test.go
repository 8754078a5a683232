package dataset_test

import (
	"errors"
	"math"
	"testing"

	"github.com/glyco-ml/glyco/pkg/dataset"
	"github.com/glyco-ml/glyco/pkg/utils/cmp"
	"github.com/glyco-ml/glyco/pkg/utils/try"
)

func rowsEq(a, b [][]float64) bool {
	return cmp.SliceEqWith(a, b, cmp.SliceEq[float64])
}

func TestTrainTestSplit(t *testing.T) {
	x := make([][]float64, 20)
	y := make([]float64, 20)
	for i := range x {
		x[i] = []float64{float64(i), float64(i * 10)}
		y[i] = float64(i % 2)
	}

	t.Run("it splits 70/30 by default ratio", func(t *testing.T) {
		split := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 0)).OrFatal(t)

		if len(split.XTrain) != 14 || len(split.YTrain) != 14 {
			t.Errorf("unexpected train size: %d", len(split.XTrain))
		}
		if len(split.XTest) != 6 || len(split.YTest) != 6 {
			t.Errorf("unexpected eval size: %d", len(split.XTest))
		}
	})

	t.Run("it rounds the train share down", func(t *testing.T) {
		split := try.To(dataset.TrainTestSplit(x[:5], y[:5], dataset.DefaultTestRatio, 0)).OrFatal(t)

		if len(split.XTrain) != 3 {
			t.Errorf("unexpected train size: %d", len(split.XTrain))
		}
		if len(split.XTest) != 2 {
			t.Errorf("unexpected eval size: %d", len(split.XTest))
		}
	})

	t.Run("it keeps labels aligned to their rows", func(t *testing.T) {
		split := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 42)).OrFatal(t)

		for i, row := range split.XTrain {
			if split.YTrain[i] != float64(int(row[0])%2) {
				t.Errorf("label mismatch at train row %d: %v -> %f", i, row, split.YTrain[i])
			}
		}
		for i, row := range split.XTest {
			if split.YTest[i] != float64(int(row[0])%2) {
				t.Errorf("label mismatch at eval row %d: %v -> %f", i, row, split.YTest[i])
			}
		}
	})

	t.Run("given a fixed seed, repeated splits are identical", func(t *testing.T) {
		a := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 7)).OrFatal(t)
		b := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 7)).OrFatal(t)

		if !rowsEq(a.XTrain, b.XTrain) || !rowsEq(a.XTest, b.XTest) {
			t.Error("splits with the same seed differ")
		}
		if !cmp.SliceEq(a.YTrain, b.YTrain) || !cmp.SliceEq(a.YTest, b.YTest) {
			t.Error("label splits with the same seed differ")
		}
	})

	t.Run("different seeds give different shuffles", func(t *testing.T) {
		a := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 1)).OrFatal(t)
		b := try.To(dataset.TrainTestSplit(x, y, dataset.DefaultTestRatio, 2)).OrFatal(t)

		if rowsEq(a.XTrain, b.XTrain) {
			t.Error("splits with different seeds are identical")
		}
	})

	t.Run("it handles an empty table", func(t *testing.T) {
		split := try.To(dataset.TrainTestSplit(nil, nil, dataset.DefaultTestRatio, 0)).OrFatal(t)

		if len(split.XTrain) != 0 || len(split.XTest) != 0 {
			t.Errorf(
				"unexpected sizes for empty input: %d, %d",
				len(split.XTrain), len(split.XTest),
			)
		}
	})

	t.Run("a ratio out of [0, 1) is rejected, not panicked on", func(t *testing.T) {
		for _, ratio := range []float64{1.5, 1.0, -0.1, math.NaN()} {
			_, err := dataset.TrainTestSplit(x, y, ratio, 0)
			if !errors.Is(err, dataset.ErrBadTestRatio) {
				t.Errorf("ratio %f: unexpected error: %v", ratio, err)
			}
		}
	})
}
