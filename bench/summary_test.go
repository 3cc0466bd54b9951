package bench

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/violenttestpen/lightbench/estimate"
)

func seeded(median float64, updates ...float64) estimate.Estimate {
	var s estimate.Streaming
	s.Seed(median)
	for _, u := range updates {
		s.Update(u)
	}
	return s.Estimate()
}

func TestSummary_Ranking(t *testing.T) {
	s := &Summary{Results: []Result{
		{Operation: "slow", Estimate: seeded(4, 4), Elapsed: 10},
		{Operation: "broken", Err: errors.New("x")},
		{Operation: "fast", Estimate: seeded(2), Elapsed: 5},
	}}

	ranking := s.Ranking()
	require.Len(t, ranking, 2)

	assert.Equal(t, "fast", ranking[0].Operation)
	assert.Equal(t, 1.0, ranking[0].Ratio)
	assert.False(t, ranking[0].HasError)

	assert.Equal(t, "slow", ranking[1].Operation)
	assert.Equal(t, 2.0, ranking[1].Ratio)
	assert.True(t, ranking[1].HasError)
	assert.Equal(t, 0.0, ranking[1].Error)

	assert.Equal(t, 15.0, s.TotalElapsed())
}

func TestSummary_Empty(t *testing.T) {
	s := &Summary{}
	assert.Empty(t, s.Ranking())
	assert.Equal(t, 0.0, s.TotalElapsed())
}

func TestSummary_ZeroFastest(t *testing.T) {
	s := &Summary{Results: []Result{
		{Operation: "a", Estimate: seeded(0)},
		{Operation: "b", Estimate: seeded(3)},
	}}
	for _, c := range s.Ranking() {
		assert.Equal(t, 0.0, c.Ratio)
	}
}

func TestReporters_FanOut(t *testing.T) {
	a, b := newRecorder(), newRecorder()
	rep := Reporters(a, nil, b)

	rep.Progress("op", 50)
	rep.OperationResult("op", seeded(1), 0)
	rep.OperationElapsed("op", 3, 0)
	rep.Summary(&Summary{})

	for _, r := range []*recorder{a, b} {
		assert.Len(t, r.progress, 1)
		assert.Contains(t, r.results, "op")
		assert.Equal(t, 3.0, r.elapsed["op"])
		assert.NotNil(t, r.summary)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry().Add("a", func() {}).AddE("b", func() error { return nil })

	ops := reg.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "a", ops[0].Name)
	assert.Equal(t, "b", ops[1].Name)

	ops[0].Name = "mutated"
	assert.Equal(t, "a", reg.Operations()[0].Name)
}

func TestStateAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.Equal(t, "warmup", PhaseWarmup.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}
