package clock

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TimeUnit selects how an elapsed interval is expressed.
type TimeUnit int

const (
	Nanoseconds TimeUnit = iota
	Ticks
	Milliseconds
	Seconds
)

// ErrInvalidUnit is returned for a TimeUnit outside the enumerated set.
var ErrInvalidUnit = errors.New("invalid time unit")

// ErrInvalidFrequency is returned when a tick source reports a non-positive
// number of ticks per second.
var ErrInvalidFrequency = errors.New("invalid tick frequency")

var unitNames = []string{"ns", "ticks", "ms", "s"}

func (u TimeUnit) String() string {
	if !u.Valid() {
		return "TimeUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitNames[u]
}

// Valid reports whether u is one of the enumerated units.
func (u TimeUnit) Valid() bool {
	return u >= Nanoseconds && u <= Seconds
}

// ParseUnit maps the textual unit names used in configuration files and flags
// ("ns", "ticks", "ms", "s") to a TimeUnit.
func ParseUnit(s string) (TimeUnit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range unitNames {
		if n == name {
			return TimeUnit(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidUnit, "unknown unit %q", s)
}
