package bench

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// Result is the outcome of benchmarking one operation.
type Result struct {
	Operation string
	Estimate  estimate.Estimate
	// Samples counts the timed invocations, seed included.
	Samples uint64
	// Elapsed spans warmup and every timed invocation.
	Elapsed float64
	// Cancelled is set when the run was stopped while this operation was
	// being measured.
	Cancelled bool
	// Err is set only for operations skipped under WithContinueOnError.
	Err error
}

// Summary describes a whole run.
type Summary struct {
	Outcome State
	Unit    clock.TimeUnit
	Results []Result
}

// Measured returns the results that produced an estimate.
func (s *Summary) Measured() []Result {
	out := make([]Result, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

// TotalElapsed sums the elapsed time of every measured operation.
func (s *Summary) TotalElapsed() float64 {
	measured := s.Measured()
	if len(measured) == 0 {
		return 0
	}
	data := make(stats.Float64Data, len(measured))
	for i, r := range measured {
		data[i] = r.Elapsed
	}
	total, err := data.Sum()
	if err != nil {
		return 0
	}
	return total
}

// Comparison places one operation relative to the fastest of the run.
type Comparison struct {
	Operation string
	Median    float64
	Error     float64
	HasError  bool
	// Ratio is Median divided by the fastest median. It is zero when the
	// fastest median is not positive.
	Ratio float64
}

// Ranking orders the measured operations by running median, fastest first.
func (s *Summary) Ranking() []Comparison {
	measured := s.Measured()
	out := make([]Comparison, 0, len(measured))
	for _, r := range measured {
		c := Comparison{Operation: r.Operation, Median: r.Estimate.Median}
		if v, err := r.Estimate.Error(); err == nil {
			c.Error, c.HasError = v, true
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Median < out[j].Median })

	if len(out) == 0 {
		return out
	}
	if fastest := out[0].Median; fastest > 0 {
		for i := range out {
			out[i].Ratio = out[i].Median / fastest
		}
	}
	return out
}
