package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	StatusText  string // Latest announcement or error
	PreviewText string // Dates of a live preview, empty when idle
	HelpText    string
	PromptLine  string // Rendered prompt input, shown instead of help
	ShowPrompt  bool
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 3

// RenderFooter renders preview, status and help (or prompt) lines.
func RenderFooter(state FooterViewState) string {
	bottom := FitLine(state.InnerW, state.HelpStyle, state.HelpText)
	if state.ShowPrompt {
		bottom = FitLine(state.InnerW, state.PromptStyle, state.PromptLine)
	}

	lines := []string{
		FitLine(state.InnerW, state.HelpStyle, state.PreviewText),
		FitLine(state.InnerW, state.StatusStyle, state.StatusText),
		bottom,
	}
	return strings.Join(lines, "\n")
}
