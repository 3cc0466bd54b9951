package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/violenttestpen/lightbench/clock"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "▒"

	fallbackTerminalWidth = 80
)

var denominators = []float64{float64(time.Hour), float64(time.Minute), float64(time.Second), float64(time.Millisecond), float64(time.Microsecond), float64(time.Nanosecond)}
var units = []string{"h", "m", "s", "ms", "µs", "ns"}

var nanosecondsPer = map[clock.TimeUnit]float64{
	clock.Nanoseconds:  1,
	clock.Milliseconds: 1e6,
	clock.Seconds:      1e9,
}

// getMeasurementMetrics picks the largest unit in which ns is at least one.
func getMeasurementMetrics(ns float64) (float64, string) {
	for i, denominator := range denominators {
		if math.Abs(ns)/denominator >= 1 {
			return denominator, units[i]
		}
	}
	return float64(time.Nanosecond), "ns"
}

// formatValue renders v, expressed in unit, scaled to a readable unit.
// Ticks have no fixed length and are printed as they are.
func formatValue(v float64, unit clock.TimeUnit) string {
	per, ok := nanosecondsPer[unit]
	if !ok {
		return fmt.Sprintf("%.0f %s", v, unit)
	}
	ns := v * per
	denominator, name := getMeasurementMetrics(ns)
	return fmt.Sprintf("%.2f %s", ns/denominator, name)
}

func clearCurrentTerminalLine(w io.Writer) {
	w.Write([]byte("\r\033[K"))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTerminalWidth
	}
	return width
}

// progressBar renders a bar that fills width cells at progress 1.
func progressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	progress = math.Max(0, math.Min(1, progress))
	done := int(progress * float64(width))
	return strings.Repeat(progressDoneRune, done) + strings.Repeat(progressPendingRune, width-done)
}
