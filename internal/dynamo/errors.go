package dynamo

import (
	"errors"
	"fmt"
)

// ErrSweepCanceled indicates a sweep was interrupted before all samples ran.
var ErrSweepCanceled = errors.New("dynamo: sweep canceled")

// SweepError carries the sample at which a sweep stopped.
type SweepError struct {
	Sample  int
	Param   float64
	Wrapped error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%v at sample %d (a=%.6f): %v", ErrSweepCanceled, e.Sample, e.Param, e.Wrapped)
}

func (e *SweepError) Unwrap() []error {
	return []error{ErrSweepCanceled, e.Wrapped}
}
