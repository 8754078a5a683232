package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DefaultTestRatio is the evaluation share of a train/eval split.
const DefaultTestRatio = 0.30

// ErrBadTestRatio is returned for an evaluation share outside [0, 1).
var ErrBadTestRatio = errors.New("test ratio must be in [0, 1)")

// Split is a train/eval partition of a feature matrix and label vector.
type Split struct {
	XTrain [][]float64
	XTest  [][]float64
	YTrain []float64
	YTest  []float64
}

// TrainTestSplit shuffles rows with the given seed and partitions them
// into train and eval subsets.
//
// The train subset gets floor((1-testRatio) * N) rows, the eval subset
// the rest. The same seed yields the same partition; the seed is passed
// explicitly, never taken from package state.
//
// testRatio must be in [0, 1), else ErrBadTestRatio is returned.
func TrainTestSplit(x [][]float64, y []float64, testRatio float64, seed int64) (Split, error) {
	if math.IsNaN(testRatio) || testRatio < 0 || 1 <= testRatio {
		return Split{}, fmt.Errorf("%w: %f", ErrBadTestRatio, testRatio)
	}

	n := len(x)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	trainN := int(float64(n) * (1 - testRatio))

	split := Split{
		XTrain: make([][]float64, 0, trainN),
		XTest:  make([][]float64, 0, n-trainN),
		YTrain: make([]float64, 0, trainN),
		YTest:  make([]float64, 0, n-trainN),
	}
	for i, idx := range perm {
		if i < trainN {
			split.XTrain = append(split.XTrain, x[idx])
			split.YTrain = append(split.YTrain, y[idx])
		} else {
			split.XTest = append(split.XTest, x[idx])
			split.YTest = append(split.YTest, y[idx])
		}
	}
	return split, nil
}
