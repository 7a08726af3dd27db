// Package view provides rendering helpers for the TUI.
package view

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatDays formats a phase length as "Nd".
func FormatDays(days int) string {
	return strconv.Itoa(days) + "d"
}

// FormatBudget formats minor currency units as "1,234.56". Zero renders as
// an empty cell.
func FormatBudget(minor int64) string {
	if minor == 0 {
		return ""
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	whole := strconv.FormatInt(minor/100, 10)
	cents := minor % 100

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(cents, 10))
	return b.String()
}

// TruncateCell shortens s to fit width terminal cells.
func TruncateCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
