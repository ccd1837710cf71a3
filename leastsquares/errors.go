package leastsquares

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrLinearAlgebra matches every *LinearAlgebraError through errors.Is.
	ErrLinearAlgebra = errors.New("leastsquares: singular or ill-conditioned normal equations")
	// ErrDimensionMismatch is returned when operand shapes disagree.
	ErrDimensionMismatch = errors.New("leastsquares: dimension mismatch")
)

// LinearAlgebraError reports that the normal equations of a fit could not be solved.
type LinearAlgebraError struct {
	Op  string
	Err error
}

func (e *LinearAlgebraError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrLinearAlgebra)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrLinearAlgebra, e.Err)
}

func (e *LinearAlgebraError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes errors.Is(err, ErrLinearAlgebra) hold for any LinearAlgebraError.
func (e *LinearAlgebraError) Is(target error) bool {
	return target == ErrLinearAlgebra
}

// Singular reports whether the Gram matrix was found exactly singular
// (infinite condition number) rather than merely ill-conditioned.
func (e *LinearAlgebraError) Singular() bool {
	var c mat.Condition
	if errors.As(e.Err, &c) {
		return math.IsInf(float64(c), 1)
	}
	return false
}
