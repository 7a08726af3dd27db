package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "Latte", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%s) unexpected error: %v", name, err)
			}

			colors := map[string]string{
				"Bg":              theme.Bg,
				"BgHighlight":     theme.BgHighlight,
				"BgSelection":     theme.BgSelection,
				"Fg":              theme.Fg,
				"FgMuted":         theme.FgMuted,
				"Accent":          theme.Accent,
				"Drag":            theme.Drag,
				"Target":          theme.Target,
				"Pending":         theme.Pending,
				"Invalid":         theme.Invalid,
				"TextOnSelection": theme.TextOnSelection,
			}

			for field, hex := range colors {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("theme.%s = %q, want #rrggbb", field, hex)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	theme := &Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff0000"}
	theme.applyDefaults()

	if theme.Drag != theme.Accent || theme.Invalid != theme.Accent {
		t.Errorf("expected accent fallbacks, got drag=%q invalid=%q", theme.Drag, theme.Invalid)
	}
	if theme.BgHighlight != theme.Bg {
		t.Errorf("BgHighlight = %q, want %q", theme.BgHighlight, theme.Bg)
	}
	if theme.TextOnSelection != theme.Fg {
		t.Errorf("TextOnSelection = %q, want %q", theme.TextOnSelection, theme.Fg)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Frappe", expected: true},
		{name: "missing theme", theme: "macchiato", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	c := Color(hex)
	if string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
