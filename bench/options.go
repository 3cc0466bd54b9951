package bench

import (
	"github.com/sirupsen/logrus"

	"github.com/violenttestpen/lightbench/clock"
)

const (
	// DefaultWarmup is the number of untimed invocations made before an
	// operation is measured.
	DefaultWarmup = 10

	// DefaultProgressInterval is the number of iterations between progress
	// reports. The runner also yields the processor at this cadence.
	DefaultProgressInterval = 1000000
)

// Option configures a Runner.
type Option func(*Runner)

// WithUnit sets the unit every measurement is expressed in. The default is
// clock.Milliseconds.
func WithUnit(unit clock.TimeUnit) Option {
	return func(r *Runner) { r.unit = unit }
}

// WithWarmup overrides the number of warmup invocations. Negative values are
// ignored.
func WithWarmup(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.warmup = n
		}
	}
}

// WithProgressInterval overrides how often progress is reported. Zero is
// ignored.
func WithProgressInterval(every uint) Option {
	return func(r *Runner) {
		if every > 0 {
			r.progressInterval = every
		}
	}
}

// WithReporter sets where results are sent.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithTickSource replaces the monotonic clock used for every measurement.
func WithTickSource(src clock.TickSource) Option {
	return func(r *Runner) { r.ticks = src }
}

// WithContinueOnError makes a failing operation get recorded and skipped
// instead of aborting the run.
func WithContinueOnError(enabled bool) Option {
	return func(r *Runner) { r.continueOnError = enabled }
}
