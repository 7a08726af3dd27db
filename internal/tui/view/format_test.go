package view

import "testing"

func TestFormatBudget(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, ""},
		{5, "0.05"},
		{150000, "1,500.00"},
		{123456789, "1,234,567.89"},
		{-2550, "-25.50"},
	}

	for _, tt := range tests {
		if got := FormatBudget(tt.minor); got != tt.want {
			t.Errorf("FormatBudget(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays(10); got != "10d" {
		t.Errorf("FormatDays(10) = %q, want 10d", got)
	}
}

func TestTruncateCell(t *testing.T) {
	if got := TruncateCell("Design", 10); got != "Design" {
		t.Errorf("TruncateCell short = %q", got)
	}
	if got := TruncateCell("Integration testing", 8); got != "Integra…" {
		t.Errorf("TruncateCell long = %q", got)
	}
	if got := TruncateCell("x", 0); got != "" {
		t.Errorf("TruncateCell zero width = %q", got)
	}
}
