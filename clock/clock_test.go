package clock

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualSource advances only when told to.
type manualSource struct {
	now  int64
	freq int64
}

func (s *manualSource) Now() int64          { return s.now }
func (s *manualSource) Frequency() int64    { return s.freq }
func (s *manualSource) advance(ticks int64) { s.now += ticks }

func TestConvert(t *testing.T) {
	const ticks, freq = 12345, 3000000

	ns, err := Convert(ticks, freq, Nanoseconds)
	require.NoError(t, err)
	assert.InDelta(t, 1e9*ticks/float64(freq), ns, 1e-6)

	raw, err := Convert(ticks, freq, Ticks)
	require.NoError(t, err)
	assert.Equal(t, float64(ticks), raw)

	ms, err := Convert(ticks, freq, Milliseconds)
	require.NoError(t, err)
	assert.InDelta(t, ns/1e6, ms, 1e-12)

	s, err := Convert(ticks, freq, Seconds)
	require.NoError(t, err)
	assert.InDelta(t, ms/1e3, s, 1e-15)
}

func TestConvert_InvalidUnit(t *testing.T) {
	for _, unit := range []TimeUnit{-1, 4, 99} {
		_, err := Convert(10, 10, unit)
		assert.Equal(t, ErrInvalidUnit, errors.Cause(err), "unit %d", int(unit))
	}
}

func TestConvert_InvalidFrequency(t *testing.T) {
	for _, freq := range []int64{0, -1000} {
		_, err := Convert(10, freq, Nanoseconds)
		assert.Equal(t, ErrInvalidFrequency, errors.Cause(err), "frequency %d", freq)
	}

	c := New(&manualSource{freq: 0})
	c.Start()
	c.Stop()
	_, err := c.Elapsed(Milliseconds)
	assert.Equal(t, ErrInvalidFrequency, errors.Cause(err))
}

func TestClock_Elapsed(t *testing.T) {
	src := &manualSource{freq: 1000}
	c := New(src)

	c.Start()
	src.advance(250)
	c.Stop()

	assert.Equal(t, int64(250), c.Ticks())
	secs, err := c.Elapsed(Seconds)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, secs, 1e-12)

	// Stopped clocks keep their interval.
	src.advance(1000)
	assert.Equal(t, int64(250), c.Ticks())
}

func TestClock_Restart(t *testing.T) {
	src := &manualSource{freq: 1000}
	c := New(src)

	c.Start()
	src.advance(40)
	c.Restart()
	src.advance(7)
	c.Stop()

	assert.Equal(t, int64(7), c.Ticks())
}

func TestClock_Independent(t *testing.T) {
	src := &manualSource{freq: 1e9}
	full, step := New(src), New(src)

	full.Restart()
	for i := 0; i < 3; i++ {
		step.Restart()
		src.advance(10)
		step.Stop()
	}
	full.Stop()

	assert.Equal(t, int64(10), step.Ticks())
	assert.Equal(t, int64(30), full.Ticks())
}

func TestMonotonic(t *testing.T) {
	src := Monotonic()
	require.Greater(t, src.Frequency(), int64(0))

	a := src.Now()
	b := src.Now()
	assert.GreaterOrEqual(t, b, a)
}

func TestParseUnit(t *testing.T) {
	cases := map[string]TimeUnit{
		"ns":    Nanoseconds,
		"ticks": Ticks,
		"MS":    Milliseconds,
		" s ":   Seconds,
	}
	for in, want := range cases {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseUnit("fortnights")
	assert.Equal(t, ErrInvalidUnit, errors.Cause(err))
}

func TestTimeUnit_String(t *testing.T) {
	assert.Equal(t, "ms", Milliseconds.String())
	assert.Equal(t, "TimeUnit(7)", TimeUnit(7).String())
	assert.False(t, TimeUnit(7).Valid())
}
