package estimate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreaming_FirstUpdate(t *testing.T) {
	pairs := [][2]float64{{1, 3}, {10, 2}, {0.5, 0.5}, {-4, 4}}
	for _, p := range pairs {
		var s Streaming
		s.Seed(p[0])
		got := s.Update(p[1])

		assert.Equal(t, math.Abs(p[1]-p[0]), got)
		e := s.Estimate()
		assert.Equal(t, (p[0]+p[1])/2, e.Median)
		assert.Equal(t, got, e.MustError())
	}
}

func TestStreaming_UsesPreUpdateMedian(t *testing.T) {
	var s Streaming
	s.Seed(10)
	s.Update(20) // error 10, median 15
	got := s.Update(11)

	// |11-15| = 4, (10+4)/2 = 7; median (15+11)/2 = 13
	assert.Equal(t, 7.0, got)
	assert.Equal(t, 13.0, s.Estimate().Median)
	assert.Equal(t, uint64(2), s.Updates())
}

func TestStreaming_ErrorNonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var s Streaming
	s.Seed(r.NormFloat64())
	for i := 0; i < 10000; i++ {
		require.GreaterOrEqual(t, s.Update(r.NormFloat64()*100), 0.0)
	}
}

func TestStreaming_SeedOnly(t *testing.T) {
	var s Streaming
	s.Seed(3.5)

	e := s.Estimate()
	assert.Equal(t, 3.5, e.Median)
	assert.False(t, e.HasError())

	_, err := e.Error()
	assert.Equal(t, ErrNoErrorEstimate, err)
	assert.Panics(t, func() { e.MustError() })
}

func TestStreaming_ReseedResets(t *testing.T) {
	var s Streaming
	s.Seed(1)
	s.Update(5)
	s.Seed(2)

	assert.False(t, s.Estimate().HasError())
	assert.Equal(t, uint64(0), s.Updates())
	assert.Equal(t, 2.0, s.Estimate().Median)
}

func TestStreaming_UpdateBeforeSeed(t *testing.T) {
	var s Streaming
	assert.False(t, s.Seeded())
	assert.Panics(t, func() { s.Update(1) })
}
