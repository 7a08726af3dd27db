package ui

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/tui/view"
)

// ErrBadBudget is returned for budgets that are not a non-negative amount
// with at most two decimals.
var ErrBadBudget = errors.New("budget must look like 1500 or 1500.50")

// PrintOpts configures phase table printing.
type PrintOpts struct {
	Verbose      bool // Show full phase names
	ShowBudget   bool // Show budget column
	Highlight    int  // Position to highlight, -1 for none
	MaxNameWidth int  // Maximum name width (0 = auto)
}

// CalcMaxNameWidth calculates the name column width based on options.
func (o PrintOpts) CalcMaxNameWidth(defaultWidth int) int {
	if o.MaxNameWidth > 0 {
		return o.MaxNameWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "  NN  " + dates "YYYY-MM-DD  YYYY-MM-DD" + days + budget
	overhead := 6 + 24 + 8
	if o.ShowBudget {
		overhead += 14
	}
	if available := termWidth() - overhead; available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintPhaseTable prints the phases of a project in position order.
func PrintPhaseTable(w io.Writer, phases []phase.Phase, opts PrintOpts) {
	nameWidth := opts.CalcMaxNameWidth(24)

	header := fmt.Sprintf("  %2s  %s  %-10s  %-10s  %5s", "#",
		runewidth.FillRight("Phase", nameWidth), "Start", "End", "Days")
	if opts.ShowBudget {
		header += fmt.Sprintf("  %12s", "Budget")
	}
	fmt.Fprintln(w, formatHeader(header))

	for i, p := range phases {
		name := runewidth.FillRight(runewidth.Truncate(p.Name, nameWidth, "..."), nameWidth)
		if i == opts.Highlight {
			name = formatAccent(name)
		}
		line := fmt.Sprintf("  %2d  %s  %s  %s  %5d", i+1, name,
			dateutil.Format(p.Start), dateutil.Format(p.End), p.Duration())
		if opts.ShowBudget {
			line += fmt.Sprintf("  %12s", view.FormatBudget(p.Budget))
		}
		fmt.Fprintln(w, line)
	}
}

// PrintProjectHeader prints the project title line.
func PrintProjectHeader(w io.Writer, p *phase.Project) {
	b := p.Boundary()
	fmt.Fprintf(w, "=== %s ===\n", formatHeader(p.Name))
	fmt.Fprintln(w, formatMuted(fmt.Sprintf("%s (%d days)", b, b.Days())))
	fmt.Fprintln(w)
}

// TimelineBar draws the phases as proportional segments of width cells.
// Segments alternate between two glyphs so neighbours stay distinct.
func TimelineBar(phases []phase.Phase, width int) string {
	total := 0
	for _, p := range phases {
		total += p.Duration()
	}
	if total == 0 || width <= 0 {
		return "[" + strings.Repeat("░", max(width, 0)) + "]"
	}

	var sb strings.Builder
	sb.WriteString("[")
	used, acc := 0, 0
	for i, p := range phases {
		acc += p.Duration()
		cells := acc*width/total - used
		if cells <= 0 {
			continue
		}
		glyph := "█"
		if i%2 == 1 {
			glyph = "▓"
		}
		sb.WriteString(strings.Repeat(glyph, cells))
		used += cells
	}
	sb.WriteString("]")
	return sb.String()
}

// ParseBudget parses a decimal amount into minor units.
func ParseBudget(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || (hasFrac && (!isDigits(frac) || len(frac) > 2)) {
		return 0, ErrBadBudget
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return 0, ErrBadBudget
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrBadBudget
		}
	}
	return units*100 + cents, nil
}

// isDigits reports whether s is non-empty and only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parsePosition converts a 1-based position argument into an index.
func parsePosition(s string, n int) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("position %q is not a number", s)
	}
	if pos < 1 || pos > n {
		return 0, fmt.Errorf("position %d out of range 1..%d", pos, n)
	}
	return pos - 1, nil
}

// parseDays accepts "10" or "10d".
func parseDays(s string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "d"))
	if err != nil {
		return 0, fmt.Errorf("days %q is not a number", s)
	}
	if days < 1 {
		return 0, phase.ErrInvalidDays
	}
	return days, nil
}
