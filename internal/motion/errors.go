package motion

import (
	"errors"
	"fmt"
)

// Configuration errors. All of them are raised at construction time;
// a successfully built component never fails mid-run except ErrInvalidStep,
// which indicates a broken sequencer and is fatal.
var (
	// ErrInvalidInterval indicates a non-positive time step.
	ErrInvalidInterval = errors.New("motion: time step must be positive")

	// ErrInvalidDuration indicates a duration shorter than one time step.
	ErrInvalidDuration = errors.New("motion: duration must be at least one time step")

	// ErrNonPositiveVelocity indicates a non-positive profile cruise velocity.
	ErrNonPositiveVelocity = errors.New("motion: profile velocity must be positive")

	// ErrNonPositiveAcceleration indicates a non-positive profile acceleration.
	ErrNonPositiveAcceleration = errors.New("motion: profile acceleration must be positive")

	// ErrZeroDistance indicates a zero move length.
	ErrZeroDistance = errors.New("motion: move length must be non-zero")

	// ErrNonPositiveMass indicates a non-positive plant mass.
	ErrNonPositiveMass = errors.New("motion: plant mass must be positive")

	// ErrInvalidStep indicates a non-positive dt passed into a running component.
	ErrInvalidStep = errors.New("motion: step dt must be positive")
)

// ParamError wraps a configuration error with the offending parameter
// name and value, so callers can assert on both without string matching.
type ParamError struct {
	Param string
	Value float64
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v (%s=%g)", e.Err, e.Param, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// NewParamError builds a ParamError around one of the sentinel errors above.
func NewParamError(sentinel error, param string, value float64) *ParamError {
	return &ParamError{Param: param, Value: value, Err: sentinel}
}
