package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyTrainingSet = errors.New("training set is empty")
	ErrBadLabel         = errors.New("label is not 0 or 1")
	ErrRaggedMatrix     = errors.New("feature rows have inconsistent width")
)

const (
	DefaultEpochs       = 500
	DefaultLearningRate = 0.1
)

// LogisticRegression is a binary linear classifier fitted by
// gradient descent on standardized features.
//
// RegRate is the L2 penalty strength applied at fit time.
type LogisticRegression struct {
	Columns   []string  `json:"columns"`
	Means     []float64 `json:"means"`
	Stds      []float64 `json:"stds"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	RegRate   float64   `json:"regRate"`
}

type fitOptions struct {
	epochs       int
	learningRate float64
	onEpoch      func(done int, total int)
}

type FitOption func(*fitOptions) *fitOptions

func WithEpochs(n int) FitOption {
	return func(o *fitOptions) *fitOptions {
		o.epochs = n
		return o
	}
}

func WithLearningRate(a float64) FitOption {
	return func(o *fitOptions) *fitOptions {
		o.learningRate = a
		return o
	}
}

// WithEpochCallback registers a callback invoked after each epoch.
// Useful for progress reporting.
func WithEpochCallback(f func(done int, total int)) FitOption {
	return func(o *fitOptions) *fitOptions {
		o.onEpoch = f
		return o
	}
}

// Fit trains a logistic regression on (x, y) with the given
// regularization strength.
//
// Labels must be 0 or 1. Fit errors are returned to the caller
// as-is; there is no retry.
func Fit(columns []string, x [][]float64, y []float64, regRate float64, opts ...FitOption) (*LogisticRegression, error) {
	opt := &fitOptions{
		epochs:       DefaultEpochs,
		learningRate: DefaultLearningRate,
	}
	for _, o := range opts {
		opt = o(opt)
	}

	n := len(x)
	if n == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(y) != n {
		return nil, fmt.Errorf(
			"feature rows and labels disagree in length: %d != %d", n, len(y),
		)
	}
	d := len(x[0])
	for i, row := range x {
		if len(row) != d {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrRaggedMatrix, i, len(row), d)
		}
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: y[%d] = %f", ErrBadLabel, i, v)
		}
	}
	if len(columns) != d {
		return nil, fmt.Errorf(
			"column names and feature width disagree: %d != %d", len(columns), d,
		)
	}

	means, stds := standardization(x)

	xd := mat.NewDense(n, d, nil)
	for i, row := range x {
		for j, v := range row {
			xd.Set(i, j, (v-means[j])/stds[j])
		}
	}

	w := mat.NewVecDense(d, nil)
	b := 0.0

	yv := mat.NewVecDense(n, y)
	residual := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)

	for epoch := 0; epoch < opt.epochs; epoch++ {
		// residual = sigmoid(Xw + b) - y
		residual.MulVec(xd, w)
		for i := 0; i < n; i++ {
			residual.SetVec(i, sigmoid(residual.AtVec(i)+b)-yv.AtVec(i))
		}

		// grad = X^T residual / n + regRate * w
		grad.MulVec(xd.T(), residual)
		grad.AddScaledVec(grad, float64(n)*regRate, w)
		w.AddScaledVec(w, -opt.learningRate/float64(n), grad)

		b -= opt.learningRate * floats.Sum(residual.RawVector().Data) / float64(n)

		if opt.onEpoch != nil {
			opt.onEpoch(epoch+1, opt.epochs)
		}
	}

	weights := make([]float64, d)
	copy(weights, w.RawVector().Data)

	return &LogisticRegression{
		Columns:   append([]string{}, columns...),
		Means:     means,
		Stds:      stds,
		Weights:   weights,
		Intercept: b,
		RegRate:   regRate,
	}, nil
}

// PredictProba returns P(label = 1) for each row.
func (m *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	probas := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf(
				"%w: row %d has %d fields, expected %d",
				ErrRaggedMatrix, i, len(row), len(m.Weights),
			)
		}
		z := m.Intercept
		for j, v := range row {
			z += m.Weights[j] * (v - m.Means[j]) / m.Stds[j]
		}
		probas[i] = sigmoid(z)
	}
	return probas, nil
}

// Predict returns the class (0 or 1) for each row.
func (m *LogisticRegression) Predict(x [][]float64) ([]int, error) {
	probas, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}
	classes := make([]int, len(probas))
	for i, p := range probas {
		if 0.5 <= p {
			classes[i] = 1
		}
	}
	return classes, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// standardization computes the per-column mean and standard deviation.
// Columns with zero deviation get std 1 so they standardize to zero.
func standardization(x [][]float64) (means []float64, stds []float64) {
	n := len(x)
	d := len(x[0])
	means = make([]float64, d)
	stds = make([]float64, d)

	for _, row := range x {
		floats.Add(means, row)
	}
	floats.Scale(1/float64(n), means)

	for _, row := range x {
		for j, v := range row {
			dev := v - means[j]
			stds[j] += dev * dev
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / float64(n))
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}
