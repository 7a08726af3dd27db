package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/tramo/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	// Header
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style
	PendingStyle   lipgloss.Style // Unsaved changes badge

	// Phase table
	ColumnHeaderStyle lipgloss.Style
	CellStyle         lipgloss.Style
	CellAltStyle      lipgloss.Style // Zebra rows
	CursorStyle       lipgloss.Style
	DragStyle         lipgloss.Style // Phase being reordered
	InvalidDragStyle  lipgloss.Style // Phase being reordered over a rejected target
	TargetStyle       lipgloss.Style // Drop target gutter marker
	BorderStyle       lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	PreviewStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// Prompt input
	PromptStyle       lipgloss.Style
	PromptTextStyle   lipgloss.Style
	PromptCursorStyle lipgloss.Style
	PlaceholderStyle  lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent)

	s.PendingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Pending).
		Background(s.colorBg)

	s.ColumnHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Padding(0, 1)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Padding(0, 1)

	s.CellAltStyle = s.CellStyle.
		Background(palette.RowAltBg)

	s.CursorStyle = s.CellStyle.
		Background(palette.BgSelection).
		Foreground(palette.TextOnSelection).
		Bold(true)

	s.DragStyle = s.CellStyle.
		Background(palette.DragBg).
		Foreground(palette.TextOnDrag).
		Bold(true)

	s.InvalidDragStyle = s.CellStyle.
		Background(palette.Invalid).
		Foreground(palette.TextOnInvalid).
		Bold(true)

	s.TargetStyle = s.CellStyle.
		Foreground(palette.Target).
		Bold(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Invalid).
		Background(s.colorBg)

	s.PreviewStyle = lipgloss.NewStyle().
		Foreground(palette.Target).
		Background(s.colorBg)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.PromptTextStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.PromptCursorStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBgHighlight)

	s.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	return s
}
