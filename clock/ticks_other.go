//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package clock

import "time"

type runtimeSource struct {
	epoch time.Time
}

// Monotonic returns a tick source backed by the monotonic reading of
// time.Now. One tick is one nanosecond.
func Monotonic() TickSource { return runtimeSource{epoch: time.Now()} }

func (s runtimeSource) Now() int64 { return int64(time.Since(s.epoch)) }

func (runtimeSource) Frequency() int64 { return 1e9 }
