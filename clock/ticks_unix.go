//go:build linux || darwin || freebsd || netbsd || openbsd

package clock

import "golang.org/x/sys/unix"

type monotonicSource struct{}

// Monotonic returns the CLOCK_MONOTONIC tick source. One tick is one
// nanosecond.
func Monotonic() TickSource { return monotonicSource{} }

func (monotonicSource) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// CLOCK_MONOTONIC is mandatory on every supported kernel.
		panic(err)
	}
	return ts.Nano()
}

func (monotonicSource) Frequency() int64 { return 1e9 }
