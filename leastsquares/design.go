// Package leastsquares fits the affine drift model distance = b + v*age by ordinary
// least squares, through the normal equations and through an SVD reference solver.
package leastsquares

import "gonum.org/v1/gonum/mat"

// NumParams is the number of coefficients of the affine model: [intercept, slope].
const NumParams = 2

// DesignMatrix returns the N x 2 design matrix whose rows are [1, age_i].
// An empty age slice gives an empty matrix, which the solvers reject.
func DesignMatrix(age []float64) *mat.Dense {
	if len(age) == 0 {
		return &mat.Dense{}
	}
	x := mat.NewDense(len(age), NumParams, nil)
	for i, a := range age {
		x.Set(i, 0, 1)
		x.Set(i, 1, a)
	}
	return x
}
