package bench

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned by New for a nil target, a zero
	// iteration count or an operation without a function to invoke.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyRun is returned when Run is called on a runner that has
	// already left the Idle state.
	ErrAlreadyRun = errors.New("runner has already been run")
)

// Phase names the part of the per-operation procedure an invocation belonged
// to.
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseSeed
	PhaseIteration
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseSeed:
		return "seed"
	case PhaseIteration:
		return "iteration"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// InvocationError reports a benchmarked operation that returned an error or
// panicked.
type InvocationError struct {
	Operation string
	Phase     Phase
	Err       error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("operation %q failed during %s: %v", e.Operation, e.Phase, e.Err)
}

// Cause returns the error produced by the operation.
func (e *InvocationError) Cause() error { return e.Err }

func (e *InvocationError) Unwrap() error { return e.Err }
