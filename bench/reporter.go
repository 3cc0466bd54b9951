package bench

import (
	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// Reporter receives the structured output of a run. Formatting is the
// reporter's concern; the runner only passes names, numbers and units.
type Reporter interface {
	// Progress is called every progress interval with the share of the
	// operation's iterations completed, in percent.
	Progress(operation string, percent float64)
	// OperationResult is called once per measured operation with the final
	// running estimate.
	OperationResult(operation string, est estimate.Estimate, unit clock.TimeUnit)
	// OperationElapsed is called once per measured operation with the time
	// spent on it, warmup included.
	OperationElapsed(operation string, elapsed float64, unit clock.TimeUnit)
	// Summary is called once when the run ends, whatever the outcome.
	Summary(s *Summary)
}

type nopReporter struct{}

// NopReporter discards everything.
func NopReporter() Reporter { return nopReporter{} }

func (nopReporter) Progress(string, float64)                                  {}
func (nopReporter) OperationResult(string, estimate.Estimate, clock.TimeUnit) {}
func (nopReporter) OperationElapsed(string, float64, clock.TimeUnit)          {}
func (nopReporter) Summary(*Summary)                                          {}

type multiReporter []Reporter

// Reporters fans every call out to rs in order.
func Reporters(rs ...Reporter) Reporter {
	var out multiReporter
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiReporter) Progress(operation string, percent float64) {
	for _, r := range m {
		r.Progress(operation, percent)
	}
}

func (m multiReporter) OperationResult(operation string, est estimate.Estimate, unit clock.TimeUnit) {
	for _, r := range m {
		r.OperationResult(operation, est, unit)
	}
}

func (m multiReporter) OperationElapsed(operation string, elapsed float64, unit clock.TimeUnit) {
	for _, r := range m {
		r.OperationElapsed(operation, elapsed, unit)
	}
}

func (m multiReporter) Summary(s *Summary) {
	for _, r := range m {
		r.Summary(s)
	}
}
