// Package uncertainty derives noise variance, coefficient covariance, standard errors and
// confidence intervals from a least-squares fit, and converts drift velocities to cm/yr.
package uncertainty

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Z95 is the two-sided 95% normal quantile used for confidence intervals.
const Z95 = 1.96

// KmMyrToCmYrFactor converts km/Myr to cm/yr: 1e5 cm / 1e6 yr.
const KmMyrToCmYrFactor = 0.1

// ErrDegreesOfFreedom matches every *DegreesOfFreedomError through errors.Is.
var ErrDegreesOfFreedom = errors.New("uncertainty: degrees of freedom must be positive")

// DegreesOfFreedomError is returned when there are not more samples than parameters.
type DegreesOfFreedomError struct {
	Samples int
	Params  int
}

func (e *DegreesOfFreedomError) Error() string {
	return fmt.Sprintf("%v: got dof=%d, need N > num_params (N=%d, num_params=%d)",
		ErrDegreesOfFreedom, e.DOF(), e.Samples, e.Params)
}

// Is makes errors.Is(err, ErrDegreesOfFreedom) hold.
func (e *DegreesOfFreedomError) Is(target error) bool {
	return target == ErrDegreesOfFreedom
}

// DOF returns Samples - Params.
func (e *DegreesOfFreedomError) DOF() int { return e.Samples - e.Params }

// Sigma2Hat is the unbiased noise variance estimate sum(r^2) / (N - p).
func Sigma2Hat(r []float64, numParams int) (float64, error) {
	dof := len(r) - numParams
	if dof <= 0 {
		return 0, &DegreesOfFreedomError{Samples: len(r), Params: numParams}
	}
	return floats.Dot(r, r) / float64(dof), nil
}

// Covariance returns sigma2 * (X^T X)^-1, the covariance of the fitted coefficients.
func Covariance(sigma2 float64, gramInv mat.Matrix) *mat.Dense {
	var cov mat.Dense
	cov.Scale(sigma2, gramInv)
	return &cov
}

// StandardErrors returns the square roots of the diagonal of cov.
func StandardErrors(cov mat.Matrix) []float64 {
	r, c := cov.Dims()
	se := make([]float64, min(r, c))
	for i := range se {
		se[i] = math.Sqrt(cov.At(i, i))
	}
	return se
}

// Interval is a confidence interval around one coefficient.
type Interval struct {
	Lower float64
	Upper float64
}

// Pair returns the interval as [lower, upper].
func (iv Interval) Pair() [2]float64 { return [2]float64{iv.Lower, iv.Upper} }

// Width returns Upper - Lower.
func (iv Interval) Width() float64 { return iv.Upper - iv.Lower }

// Map applies f to both bounds.
func (iv Interval) Map(f func(float64) float64) Interval {
	return Interval{Lower: f(iv.Lower), Upper: f(iv.Upper)}
}

// ConfidenceInterval returns value -/+ z*se.
func ConfidenceInterval(value, se, z float64) Interval {
	return Interval{Lower: value - z*se, Upper: value + z*se}
}

// ZForLevel returns the two-sided normal quantile for a confidence level in (0, 1).
// The 0.95 level maps to Z95 exactly rather than to 1.959964.
func ZForLevel(level float64) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, fmt.Errorf("confidence level %v not in (0, 1)", level)
	}
	if level == 0.95 {
		return Z95, nil
	}
	return distuv.UnitNormal.Quantile(1 - (1-level)/2), nil
}

// KmMyrToCmYr converts a velocity in km/Myr to cm/yr.
func KmMyrToCmYr(v float64) float64 {
	return v * KmMyrToCmYrFactor
}
