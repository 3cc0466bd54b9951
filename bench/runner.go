// Package bench runs quick in-process micro-benchmarks.
//
// A Runner warms each operation of a Target up, times one invocation to seed a
// running estimate and then folds every further timed invocation into it. The
// estimate is the cheap approximation from package estimate, not a rigorous
// statistic. Runs can be stopped cooperatively: the flag is checked after
// every measured invocation and before each operation starts, never during an
// invocation.
package bench

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// State is the lifecycle stage of a Runner.
type State int32

const (
	Idle State = iota
	Running
	Completed
	Cancelled
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Runner benchmarks the operations of one Target. A Runner is single use.
type Runner struct {
	target Target
	ops    []Operation

	iterations       uint
	unit             clock.TimeUnit
	warmup           int
	progressInterval uint
	continueOnError  bool
	reporter         Reporter
	log              logrus.FieldLogger
	ticks            clock.TickSource

	full *clock.Clock
	step *clock.Clock

	stopped atomic.Bool
	state   atomic.Int32
}

// New prepares a runner for target that takes iterations timed samples of
// each operation. The target's operations are read once, here.
func New(target Target, iterations uint, opts ...Option) (*Runner, error) {
	if target == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "target is nil")
	}
	if iterations == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "iteration count must be positive")
	}

	r := &Runner{
		target:           target,
		iterations:       iterations,
		unit:             clock.Milliseconds,
		warmup:           DefaultWarmup,
		progressInterval: DefaultProgressInterval,
		reporter:         NopReporter(),
		log:              logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if !r.unit.Valid() {
		return nil, errors.Wrapf(clock.ErrInvalidUnit, "configured unit %s", r.unit)
	}

	if r.ticks != nil && r.ticks.Frequency() <= 0 {
		return nil, errors.Wrapf(clock.ErrInvalidFrequency, "tick source reports %d ticks per second", r.ticks.Frequency())
	}

	r.ops = target.Operations()
	for i, op := range r.ops {
		if op.Invoke == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "operation %d (%q) has nothing to invoke", i, op.Name)
		}
	}

	r.full = clock.New(r.ticks)
	r.step = clock.New(r.ticks)
	return r, nil
}

// Target returns the instance under test.
func (r *Runner) Target() Target { return r.target }

// Operations returns the operations the runner will measure, in order.
func (r *Runner) Operations() []Operation {
	return append([]Operation(nil), r.ops...)
}

// State returns the current lifecycle stage.
func (r *Runner) State() State { return State(r.state.Load()) }

// Stop asks the run to end at the next checkpoint. It is safe to call from
// any goroutine, any number of times, before or during Run. After the run has
// finished it has no effect.
func (r *Runner) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		r.log.Debug("benchmark stop requested")
	}
}

// Run measures every operation in order and returns the summary of the run.
//
// If ctx is cancelled the run stops as if Stop had been called. A failing
// operation aborts the run and its *InvocationError is returned together
// with the summary of what was measured before it, unless the runner was
// built WithContinueOnError.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if ctx == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "context is nil")
	}
	if !r.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return nil, ErrAlreadyRun
	}
	defer context.AfterFunc(ctx, r.Stop)()

	r.log.WithFields(logrus.Fields{
		"operations": len(r.ops),
		"iterations": r.iterations,
		"unit":       r.unit,
	}).Debug("benchmark run started")

	summary := &Summary{Unit: r.unit}
	var runErr error
	for _, op := range r.ops {
		if ctx.Err() != nil {
			r.Stop()
		}
		if r.stopped.Load() {
			break
		}

		result, err := r.runOperation(op)
		if err != nil {
			if !r.continueOnError {
				runErr = err
				break
			}
			r.log.WithError(err).WithField("operation", op.Name).Warn("skipping failed operation")
			summary.Results = append(summary.Results, Result{Operation: op.Name, Err: err})
			continue
		}
		summary.Results = append(summary.Results, result)
		if result.Cancelled {
			break
		}
	}

	switch {
	case runErr != nil:
		summary.Outcome = Failed
	case r.stopped.Load() && r.interrupted(summary):
		summary.Outcome = Cancelled
	default:
		summary.Outcome = Completed
	}
	r.state.Store(int32(summary.Outcome))
	r.log.WithField("outcome", summary.Outcome).Debug("benchmark run finished")

	r.reporter.Summary(summary)
	return summary, runErr
}

// interrupted reports whether the stop request cut the run short, as opposed
// to arriving after the last checkpoint of the last operation.
func (r *Runner) interrupted(s *Summary) bool {
	if len(s.Results) < len(r.ops) {
		return true
	}
	return len(s.Results) > 0 && s.Results[len(s.Results)-1].Cancelled
}

func (r *Runner) runOperation(op Operation) (Result, error) {
	log := r.log.WithField("operation", op.Name)
	phase := PhaseWarmup

	r.full.Restart()

	log.WithField("invocations", r.warmup).Debug("warming up")
	for i := 0; i < r.warmup; i++ {
		if _, err := r.measure(op, phase); err != nil {
			return Result{}, err
		}
	}

	phase = PhaseSeed
	sample, err := r.measure(op, phase)
	if err != nil {
		return Result{}, err
	}
	var stream estimate.Streaming
	stream.Seed(sample)

	phase = PhaseIteration
	cancelled := false
	for i := uint(1); i < r.iterations; i++ {
		sample, err := r.measure(op, phase)
		if err != nil {
			return Result{}, err
		}
		stream.Update(sample)

		if r.stopped.Load() {
			cancelled = true
			log.WithField("iteration", i).Debug("stopped during measurement")
			break
		}

		if i%r.progressInterval != 0 {
			continue
		}

		r.reporter.Progress(op.Name, float64(i)/float64(r.iterations)*100)
		runtime.Gosched()
	}

	est := stream.Estimate()
	r.reporter.OperationResult(op.Name, est, r.unit)

	r.full.Stop()
	elapsed, err := r.full.Elapsed(r.unit)
	if err != nil {
		return Result{}, err
	}
	r.reporter.OperationElapsed(op.Name, elapsed, r.unit)

	return Result{
		Operation: op.Name,
		Estimate:  est,
		Samples:   stream.Updates() + 1,
		Elapsed:   elapsed,
		Cancelled: cancelled,
	}, nil
}

// measure times a single invocation of op. A panic in op is returned as an
// *InvocationError.
func (r *Runner) measure(op Operation, phase Phase) (sample float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.step.Stop()
			err = &InvocationError{Operation: op.Name, Phase: phase, Err: errors.Errorf("panic: %v", p)}
		}
	}()

	r.step.Restart()
	err = op.Invoke()
	r.step.Stop()
	if err != nil {
		return 0, &InvocationError{Operation: op.Name, Phase: phase, Err: err}
	}
	return r.step.Elapsed(r.unit)
}
