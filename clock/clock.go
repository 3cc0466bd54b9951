package clock

import "github.com/pkg/errors"

// TickSource is a monotonic counter. Now returns the current raw tick count
// and Frequency the number of ticks per second.
type TickSource interface {
	Now() int64
	Frequency() int64
}

// Clock measures a single interval on a TickSource. The zero value is not
// usable; create clocks with New.
//
// A Clock holds only its own interval, so two clocks built on the same source
// never observe each other's Restart.
type Clock struct {
	source  TickSource
	started int64
	ticks   int64
	running bool
}

// New returns a stopped clock reading from source. A nil source selects the
// operating system's monotonic clock.
func New(source TickSource) *Clock {
	if source == nil {
		source = Monotonic()
	}
	return &Clock{source: source}
}

// Start begins an interval. Starting a running clock has no effect.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.started = c.source.Now()
	c.running = true
}

// Stop ends the current interval and records its length.
func (c *Clock) Stop() {
	if !c.running {
		return
	}
	c.ticks = c.source.Now() - c.started
	c.running = false
}

// Restart discards the recorded interval and starts a fresh one.
func (c *Clock) Restart() {
	c.ticks = 0
	c.running = false
	c.Start()
}

// Ticks returns the raw length of the last completed interval.
func (c *Clock) Ticks() int64 { return c.ticks }

// Elapsed converts the last completed interval into unit.
func (c *Clock) Elapsed(unit TimeUnit) (float64, error) {
	return Convert(c.ticks, c.source.Frequency(), unit)
}

// Convert expresses ticks counted at frequency ticks per second in unit.
// Ticks are returned unconverted.
func Convert(ticks, frequency int64, unit TimeUnit) (float64, error) {
	if frequency <= 0 {
		return 0, errors.Wrapf(ErrInvalidFrequency, "%d ticks per second", frequency)
	}

	ns := 1e9 * float64(ticks) / float64(frequency)
	ms := ns / 1e6
	s := ms / 1e3

	switch unit {
	case Nanoseconds:
		return ns, nil
	case Ticks:
		return float64(ticks), nil
	case Milliseconds:
		return ms, nil
	case Seconds:
		return s, nil
	default:
		return 0, errors.Wrapf(ErrInvalidUnit, "cannot convert to %s", unit)
	}
}
