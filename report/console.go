package report

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/violenttestpen/lightbench/bench"
	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// Console prints results for a person watching a terminal. Progress is drawn
// as a bar that is redrawn in place.
type Console struct {
	out   io.Writer
	width func() int

	pendingLine bool
}

// NewConsole returns a console reporter writing to w, or to color.Output if w
// is nil. Colouring follows color.NoColor.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = color.Output
	}
	return &Console{out: w, width: terminalWidth}
}

// Header announces the benchmark of a target.
func (c *Console) Header(index int, target string) {
	c.finishLine()
	fmt.Fprintf(c.out, "Benchmark #%d: %s\n", index, target)
}

func (c *Console) Progress(operation string, percent float64) {
	clearCurrentTerminalLine(c.out)
	line := fmt.Sprintf("  %s %s ", color.YellowString(operation), color.GreenString("%6.2f%%", percent))
	// Leave room for the visible part of line: name, percentage and spaces.
	barWidth := c.width() - utf8.RuneCountInString(operation) - 12
	fmt.Fprintf(c.out, "%s%s", line, progressBar(percent/100, barWidth))
	c.pendingLine = true
}

func (c *Console) OperationResult(operation string, est estimate.Estimate, unit clock.TimeUnit) {
	c.finishLine()
	errText := color.HiBlackString("n/a")
	if v, err := est.Error(); err == nil {
		errText = color.GreenString(formatValue(v, unit))
	}
	fmt.Fprintf(c.out, "  %s (%s ± %s):\t%s ± %s\n",
		color.CyanString(operation),
		color.GreenString("median"),
		color.GreenString("error"),
		color.GreenString(formatValue(est.Median, unit)),
		errText)
}

func (c *Console) OperationElapsed(operation string, elapsed float64, unit clock.TimeUnit) {
	fmt.Fprintf(c.out, "  %s full time:\t%s\n", color.CyanString(operation), color.HiBlackString(formatValue(elapsed, unit)))
}

func (c *Console) Summary(s *bench.Summary) {
	c.finishLine()

	switch s.Outcome {
	case bench.Cancelled:
		fmt.Fprintln(c.out, color.YellowString("Run cancelled"))
	case bench.Failed:
		fmt.Fprintln(c.out, color.RedString("Run aborted"))
	}
	for _, r := range s.Results {
		if r.Err != nil {
			fmt.Fprintf(c.out, "  %s skipped: %s\n", color.RedString(r.Operation), r.Err)
		}
	}

	ranking := s.Ranking()
	if len(ranking) < 2 {
		return
	}

	fmt.Fprintln(c.out, "Summary")
	fastest := ranking[0]
	fmt.Fprintf(c.out, "  '%s' ran\n", color.CyanString(fastest.Operation))
	for _, cmp := range ranking[1:] {
		if cmp.Ratio == 0 {
			fmt.Fprintf(c.out, "    %s '%s'\n", color.HiBlackString("no ratio against"), color.RedString(cmp.Operation))
			continue
		}
		fmt.Fprintf(c.out, "    %s ± %s times faster than '%s'\n",
			color.GreenString("%.2f", cmp.Ratio),
			color.GreenString("%.2f", ratioSpread(fastest, cmp)),
			color.RedString(cmp.Operation))
	}
	fmt.Fprintf(c.out, "  Total time: %s\n", color.HiBlackString(formatValue(s.TotalElapsed(), s.Unit)))
}

// ratioSpread widens the median ratio by each side's running error. Missing
// errors count as zero.
func ratioSpread(fastest, other bench.Comparison) float64 {
	lowDenominator := fastest.Median - fastest.Error
	if lowDenominator <= 0 {
		return 0
	}
	pos := (other.Median+other.Error)/(fastest.Median+fastest.Error) - other.Ratio
	neg := other.Ratio - (other.Median-other.Error)/lowDenominator
	return math.Abs(pos) + math.Abs(neg)
}

func (c *Console) finishLine() {
	if c.pendingLine {
		clearCurrentTerminalLine(c.out)
		c.pendingLine = false
	}
}
