package pvmodel

import (
	"fmt"
	"math"
)

// Newton-Raphson settings. The tolerance is absolute on the step size; the
// derivative floor guards the division when the curve goes flat.
const (
	newtonTol       = 1e-10
	newtonMaxIter   = 100
	derivativeFloor = 1e-15
)

// math.Exp overflows to +Inf for arguments above ~709.78.
const maxExpArg = 700.0

// RootFindingError reports a voltage sample whose current could not be
// solved. The whole solve is aborted; partial curves are never returned.
type RootFindingError struct {
	VoltageV   float64
	Iterations int
	Err        error
}

func (e *RootFindingError) Error() string {
	return fmt.Sprintf("solving current at %.4f V: %v", e.VoltageV, e.Err)
}

func (e *RootFindingError) Unwrap() error { return e.Err }

// newtonSolve finds a root of fn starting from guess, using the analytic
// derivative. Returns the root and how many iterations it took.
func newtonSolve(fn, deriv func(float64) float64, guess float64) (float64, int, error) {
	x := guess
	for i := 0; i < newtonMaxIter; i++ {
		dfx := deriv(x)
		if math.Abs(dfx) < derivativeFloor {
			return 0, i, fmt.Errorf("derivative vanished at %g", x)
		}
		step := fn(x) / dfx
		x -= step
		if math.Abs(step) < newtonTol {
			return x, i + 1, nil
		}
	}
	return 0, newtonMaxIter, fmt.Errorf("no convergence after %d iterations", newtonMaxIter)
}

// stableExp clamps the argument so extreme but valid inputs saturate
// instead of overflowing to +Inf.
func stableExp(arg float64) float64 {
	if arg > maxExpArg {
		arg = maxExpArg
	}
	return math.Exp(arg)
}
