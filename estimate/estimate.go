// Package estimate keeps a running central value and deviation for a stream
// of timing samples in constant memory.
//
// The "median" here is an exponential moving average with weight 1/2 and the
// "error" is the same smoothing applied to the absolute distance between each
// sample and the median as it stood before that sample. Neither is a true
// median or median absolute deviation; callers must not expect them to be.
package estimate

import "github.com/pkg/errors"

// ErrNoErrorEstimate is returned when the error of an estimate is requested
// but only the seed sample has been observed.
var ErrNoErrorEstimate = errors.New("no error estimate: only the seed sample was observed")

// Streaming folds samples into a running median and error.
type Streaming struct {
	median   float64
	err      float64
	hasError bool
	seeded   bool
	updates  uint64
}

// Seed starts the stream with its first sample. Seeding again discards
// everything observed so far.
func (s *Streaming) Seed(sample float64) {
	*s = Streaming{median: sample, seeded: true}
}

// Update folds sample into the estimate and returns the new error.
func (s *Streaming) Update(sample float64) float64 {
	if !s.seeded {
		panic("estimate: Update called before Seed")
	}

	diff := sample - s.median
	if diff < 0 {
		diff = -diff
	}

	if s.hasError {
		s.err = (s.err + diff) / 2
	} else {
		s.err = diff
		s.hasError = true
	}
	s.median = (s.median + sample) / 2
	s.updates++

	return s.err
}

// Seeded reports whether Seed has been called.
func (s *Streaming) Seeded() bool { return s.seeded }

// Updates returns the number of samples folded in after the seed.
func (s *Streaming) Updates() uint64 { return s.updates }

// Estimate returns a snapshot of the current state.
func (s *Streaming) Estimate() Estimate {
	return Estimate{Median: s.median, err: s.err, hasError: s.hasError}
}

// Estimate is a point-in-time view of a Streaming statistic.
type Estimate struct {
	Median float64

	err      float64
	hasError bool
}

// HasError reports whether at least one sample followed the seed.
func (e Estimate) HasError() bool { return e.hasError }

// Error returns the running error, or ErrNoErrorEstimate if only the seed
// sample was observed.
func (e Estimate) Error() (float64, error) {
	if !e.hasError {
		return 0, ErrNoErrorEstimate
	}
	return e.err, nil
}

// MustError is like Error but panics when the error is absent.
func (e Estimate) MustError() float64 {
	v, err := e.Error()
	if err != nil {
		panic(err)
	}
	return v
}
