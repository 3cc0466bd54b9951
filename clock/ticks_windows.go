//go:build windows

package clock

import (
	"sync"

	"golang.org/x/sys/windows"
)

type performanceCounter struct{}

var (
	qpcFrequency     int64
	qpcFrequencyOnce sync.Once
)

// Monotonic returns the QueryPerformanceCounter tick source.
func Monotonic() TickSource { return performanceCounter{} }

func (performanceCounter) Now() int64 {
	var counter int64
	if err := windows.QueryPerformanceCounter(&counter); err != nil {
		panic(err)
	}
	return counter
}

func (performanceCounter) Frequency() int64 {
	qpcFrequencyOnce.Do(func() {
		if err := windows.QueryPerformanceFrequency(&qpcFrequency); err != nil {
			panic(err)
		}
	})
	return qpcFrequency
}
