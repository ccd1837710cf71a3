package leastsquares

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ConditionLimit is the largest condition number of the Gram matrix accepted by
// FitClosedForm. It is tighter than gonum's mat.ConditionTolerance so that Gram
// matrices of degenerate designs, whose LU pivots only round to a tiny non-zero
// value, are still rejected.
const ConditionLimit = 1e12

// Fit holds the result of a closed-form fit.
type Fit struct {
	// Coefficients is [intercept, slope].
	Coefficients *mat.VecDense
	// GramInverse is (X^T X)^-1 of the same fit, kept for the covariance estimate.
	GramInverse *mat.Dense
}

// Intercept returns the fitted intercept b (km).
func (f *Fit) Intercept() float64 { return f.Coefficients.AtVec(0) }

// Slope returns the fitted slope v (km/Myr).
func (f *Fit) Slope() float64 { return f.Coefficients.AtVec(1) }

// FitClosedForm solves the normal equations (X^T X) w = X^T y.
// The Gram matrix is LU-factorized once and used for both w and (X^T X)^-1;
// no explicit inverse is formed.
func FitClosedForm(x mat.Matrix, y []float64) (*Fit, error) {
	n, p := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("closed-form fit: %d rows for %d targets: %w", n, len(y), ErrDimensionMismatch)
	}
	if n < 2 || n < p {
		return nil, &LinearAlgebraError{
			Op:  "closed-form fit",
			Err: fmt.Errorf("%d samples for %d parameters", n, p),
		}
	}

	var gram mat.Dense
	gram.Mul(x.T(), x)

	var rhs mat.VecDense
	rhs.MulVec(x.T(), mat.NewVecDense(n, y))

	var lu mat.LU
	lu.Factorize(&gram)
	cond := lu.Cond()
	if lu.Det() == 0 {
		cond = math.Inf(1)
	}
	if math.IsInf(cond, 1) || math.IsNaN(cond) || cond > ConditionLimit {
		return nil, &LinearAlgebraError{Op: "closed-form fit", Err: mat.Condition(cond)}
	}

	w := mat.NewVecDense(p, nil)
	if err := lu.SolveVecTo(w, false, &rhs); err != nil {
		return nil, &LinearAlgebraError{Op: "closed-form fit", Err: err}
	}

	eye := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		eye.Set(i, i, 1)
	}
	inv := mat.NewDense(p, p, nil)
	if err := lu.SolveTo(inv, false, eye); err != nil {
		return nil, &LinearAlgebraError{Op: "gram inverse", Err: err}
	}

	return &Fit{Coefficients: w, GramInverse: inv}, nil
}

// Reference is the result of the SVD least-squares solver.
type Reference struct {
	Coefficients   *mat.VecDense
	Rank           int
	SingularValues []float64
	// ResidualSS is the residual sum of squares |y - Xw|^2.
	ResidualSS float64
}

// FitReference computes the minimum-norm least-squares solution from a thin SVD of X.
// Singular values below eps*max(N, p) times the largest one are treated as zero, so a
// rank-deficient design yields a solution with Rank < p instead of an error.
func FitReference(x mat.Matrix, y []float64) (*Reference, error) {
	n, p := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("reference fit: %d rows for %d targets: %w", n, len(y), ErrDimensionMismatch)
	}
	if n == 0 || p == 0 {
		return nil, &LinearAlgebraError{Op: "reference fit", Err: errors.New("empty design matrix")}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, &LinearAlgebraError{Op: "reference fit", Err: errors.New("SVD factorization failed")}
	}

	rcond := eps * float64(max(n, p))
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, &LinearAlgebraError{Op: "reference fit", Err: errors.New("design matrix has rank 0")}
	}

	yv := mat.NewVecDense(n, y)
	w := mat.NewVecDense(p, nil)
	svd.SolveVecTo(w, yv, rank)

	var r mat.VecDense
	r.MulVec(x, w)
	r.SubVec(yv, &r)

	return &Reference{
		Coefficients:   w,
		Rank:           rank,
		SingularValues: svd.Values(nil),
		ResidualSS:     mat.Dot(&r, &r),
	}, nil
}

// eps is the float64 machine epsilon, scaled by max(n, p) for the SVD rank cutoff.
const eps = 2.220446049250313e-16

// Agree reports whether a and b have the same length and every pair of elements
// differs by at most tol.
func Agree(a, b mat.Vector, tol float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if math.Abs(a.AtVec(i)-b.AtVec(i)) > tol {
			return false
		}
	}
	return true
}

// Predict returns X*w.
func Predict(x mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	n, p := x.Dims()
	if w.Len() != p {
		return nil, fmt.Errorf("predict: %d coefficients for %d columns: %w", w.Len(), p, ErrDimensionMismatch)
	}
	if n == 0 {
		return &mat.VecDense{}, nil
	}
	yHat := mat.NewVecDense(n, nil)
	yHat.MulVec(x, w)
	return yHat, nil
}
