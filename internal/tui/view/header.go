package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderViewState holds the strings needed to render the project header.
type HeaderViewState struct {
	InnerW        int
	Title         string // Project name
	Subtitle      string // Boundary and span
	Tabs          []string
	ActiveTab     int
	Badge         string // Pending changes marker, empty when clean
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	TabStyle      lipgloss.Style
	ActiveStyle   lipgloss.Style
	BadgeStyle    lipgloss.Style
	Bg            lipgloss.Color
}

// HeaderHeight is the number of lines RenderHeader produces.
const HeaderHeight = 2

// RenderHeader renders the project title line and the project tabs line.
func RenderHeader(state HeaderViewState) string {
	title := state.TitleStyle.Render(state.Title)
	if state.Subtitle != "" {
		title += " " + state.SubtitleStyle.Render(state.Subtitle)
	}
	if state.Badge != "" {
		title += " " + state.BadgeStyle.Render(state.Badge)
	}

	tabs := make([]string, len(state.Tabs))
	for i, name := range state.Tabs {
		if i == state.ActiveTab {
			tabs[i] = state.ActiveStyle.Render(name)
			continue
		}
		tabs[i] = state.TabStyle.Render(name)
	}

	lines := []string{
		FitLine(state.InnerW, lipgloss.NewStyle().Background(state.Bg), title),
		FitLine(state.InnerW, lipgloss.NewStyle().Background(state.Bg), strings.Join(tabs, " ")),
	}
	return strings.Join(lines, "\n")
}

// ProjectTabs returns tab labels for the given project names.
func ProjectTabs(names []string) []string {
	tabs := make([]string, len(names))
	for i, name := range names {
		tabs[i] = " " + name + " "
	}
	return tabs
}
