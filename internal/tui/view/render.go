// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// MinHeight fits the header, the footer and one table row with its chrome.
const MinHeight = HeaderHeight + FooterHeight + TableChromeTop + TableChromeBottom + 1

// Screen holds the rendered sections of the TUI.
type Screen struct {
	Width  int
	Height int
	Header string
	Table  string
	Footer string
	Frame  lipgloss.Style
	Bg     lipgloss.Color
}

// Render stacks header, table and footer and fills the rest of the screen
// with the background. Before the first size message it shows a loading line.
func Render(s Screen) string {
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}
	if s.Width < 0 || s.Height < MinHeight {
		return "Terminal too small"
	}
	content := lipgloss.JoinVertical(lipgloss.Left, s.Header, s.Table, s.Footer)
	return PadLinesWithBackground(s.Frame.Render(content), s.Width, s.Height, s.Bg)
}
