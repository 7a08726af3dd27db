package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Lines the table spends on chrome above and below the phase rows.
const (
	TableChromeTop    = 3 // Top border, column headers, header separator
	TableChromeBottom = 1 // Bottom border
)

// TableRow is one phase row. The first cell is the gutter, which carries the
// cursor or drag marker and is styled on its own.
type TableRow struct {
	Cells  []string
	Style  lipgloss.Style
	Gutter lipgloss.Style
}

// TableViewState holds data needed to render the phase table.
type TableViewState struct {
	Width       int
	Height      int
	Headers     []string
	HeaderStyle lipgloss.Style
	Rows        []TableRow
	BorderStyle lipgloss.Style
	Bg          lipgloss.Color
}

// RenderTable renders the visible phase rows in a bordered table that fills
// Width x Height.
func RenderTable(state TableViewState) string {
	if state.Height <= 0 {
		return ""
	}

	rows := make([][]string, len(state.Rows))
	for i, r := range state.Rows {
		rows[i] = r.Cells
	}

	t := table.New().
		Headers(state.Headers...).
		Width(max(state.Width-2, 0)).
		Height(state.Height).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return state.HeaderStyle
			case row < 0 || row >= len(state.Rows):
				return lipgloss.NewStyle()
			case col == 0:
				return state.Rows[row].Gutter
			default:
				return state.Rows[row].Style
			}
		})

	return PlaceBox(state.Width, state.Height, lipgloss.Top, t.Render(), state.Bg)
}

// EmptyTable renders a single message line in place of the table.
func EmptyTable(width, height int, style lipgloss.Style, msg string, bg lipgloss.Color) string {
	return PlaceBox(width, height, lipgloss.Top, FitLine(width, style, msg), bg)
}
