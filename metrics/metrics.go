// Package metrics computes residuals and goodness-of-fit measures of a regression.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when observed and predicted values differ in length.
var ErrLengthMismatch = errors.New("metrics: length mismatch")

// Residuals returns yTrue - yPred elementwise.
func Residuals(yTrue, yPred []float64) ([]float64, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("residuals: %d observed, %d predicted: %w", len(yTrue), len(yPred), ErrLengthMismatch)
	}
	r := make([]float64, len(yTrue))
	floats.SubTo(r, yTrue, yPred)
	return r, nil
}

// RMSE is the root mean squared residual. It is NaN for an empty slice.
func RMSE(r []float64) float64 {
	if len(r) == 0 {
		return math.NaN()
	}
	return math.Sqrt(floats.Dot(r, r) / float64(len(r)))
}

// R2 is the coefficient of determination 1 - SS_res/SS_total.
// When every observed value is identical (SS_total == 0) it returns 0.
func R2(yTrue, yPred []float64) (float64, error) {
	r, err := Residuals(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if len(yTrue) == 0 {
		return 0, nil
	}

	mean := stat.Mean(yTrue, nil)
	ssTotal := 0.
	for _, y := range yTrue {
		ssTotal += (y - mean) * (y - mean)
	}
	if ssTotal == 0 {
		return 0, nil
	}
	ssRes := floats.Dot(r, r)
	return 1 - ssRes/ssTotal, nil
}
