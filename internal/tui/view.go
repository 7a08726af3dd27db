package tui

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/timeline"
	"github.com/javiermolinar/tramo/internal/tui/view"
)

const maxNameWidth = 40

var tableHeaders = []string{"", "Phase", "Start", "End", "Days", "Budget"}

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height < view.MinHeight {
		return view.Render(view.Screen{Width: m.width, Height: m.height})
	}
	return view.Render(view.Screen{
		Width:  m.width,
		Height: m.height,
		Header: view.RenderHeader(m.headerViewState()),
		Table:  m.renderTable(),
		Footer: view.RenderFooter(m.footerViewState()),
		Frame:  m.styles.AppStyle,
		Bg:     m.styles.colorBg,
	})
}

func (m Model) headerViewState() view.HeaderViewState {
	state := view.HeaderViewState{
		InnerW:        m.width,
		Title:         "tramo",
		ActiveTab:     m.current,
		TitleStyle:    m.styles.TitleStyle,
		SubtitleStyle: m.styles.SubtitleStyle,
		TabStyle:      m.styles.TabStyle,
		ActiveStyle:   m.styles.ActiveTabStyle,
		BadgeStyle:    m.styles.PendingStyle,
		Bg:            m.styles.colorBg,
	}

	names := make([]string, len(m.projects))
	for i, p := range m.projects {
		names[i] = p.Name
	}
	state.Tabs = view.ProjectTabs(names)

	if p := m.currentProject(); p != nil {
		b := p.Boundary()
		state.Title = p.Name
		state.Subtitle = fmt.Sprintf("%s (%d days)", b.String(), b.Days())
	}
	if m.pending.HasChanges() {
		state.Badge = fmt.Sprintf("● %d unsaved", m.pending.Count())
	}
	return state
}

// tableRows returns the phases to show and the session snapshot, if any.
// Keyboard sessions show the live preview order; pointer sessions keep the
// accepted order so rows stay under the pointer.
func (m Model) tableRows() ([]phase.Phase, session.Snapshot, bool) {
	snap, active := m.engine.Snapshot()
	if active && snap.Mode == session.ModeKeyboard {
		return snap.Preview, snap, true
	}
	return m.engine.Phases(), snap, active
}

func (m Model) renderTable() string {
	height := m.tableHeight()
	phases, snap, active := m.tableRows()
	if len(phases) == 0 {
		msg := "No phases. Press a to add one."
		if m.loading {
			msg = "Loading..."
		}
		if m.currentProject() == nil && !m.loading {
			msg = ""
		}
		return view.EmptyTable(m.width, height, m.styles.HelpStyle, "  "+msg, m.styles.colorBg)
	}

	start := min(m.scrollOffset, len(phases))
	end := min(start+m.visibleRows(), len(phases))

	rows := make([]view.TableRow, 0, end-start)
	for i := start; i < end; i++ {
		p := phases[i]
		style, gutter := m.rowStyle(i, p, snap, active)
		gutterStyle := style
		if gutter != "" && !(active && p.ID == snap.SelectedID) {
			gutterStyle = m.styles.TargetStyle
		}
		rows = append(rows, view.TableRow{
			Cells: []string{
				gutter,
				view.TruncateCell(p.Name, maxNameWidth),
				dateutil.Format(p.Start),
				dateutil.Format(p.End),
				view.FormatDays(p.Duration()),
				view.FormatBudget(p.Budget),
			},
			Style:  style,
			Gutter: gutterStyle,
		})
	}

	return view.RenderTable(view.TableViewState{
		Width:       m.width,
		Height:      height,
		Headers:     tableHeaders,
		HeaderStyle: m.styles.ColumnHeaderStyle,
		Rows:        rows,
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	})
}

// rowStyle picks the style and gutter marker for row i.
func (m Model) rowStyle(i int, p phase.Phase, snap session.Snapshot, active bool) (lipgloss.Style, string) {
	base := m.styles.CellStyle
	if i%2 == 1 {
		base = m.styles.CellAltStyle
	}

	if !active {
		if i == m.cursor && m.mode == ModeNormal {
			return m.styles.CursorStyle, "›"
		}
		return base, ""
	}

	if p.ID == snap.SelectedID {
		if snap.HasCandidate && !snap.Validation.Valid {
			return m.styles.InvalidDragStyle, "✗"
		}
		return m.styles.DragStyle, "≡"
	}
	// Pointer sessions mark where the dragged phase would land.
	if snap.Mode == session.ModePointer && snap.HasCandidate && i == snap.Candidate {
		if snap.Candidate < snap.Origin {
			return base, "▲"
		}
		return base, "▼"
	}
	return base, ""
}

func (m Model) footerViewState() view.FooterViewState {
	statusStyle := m.styles.StatusStyle
	if m.status.isError {
		statusStyle = m.styles.ErrorStyle
	}

	state := view.FooterViewState{
		InnerW:      m.width,
		StatusText:  m.status.text,
		PreviewText: m.previewText(),
		HelpText:    m.helpText(),
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		PromptStyle: m.styles.PromptStyle,
	}
	if m.mode == ModePrompt {
		state.ShowPrompt = true
		state.PromptLine = m.prompt.View()
		state.PreviewText = m.helpText()
		if hint := m.promptHint(); hint != "" {
			state.PreviewText = hint
		}
	}
	return state
}

// previewText lists the dates of the live preview while a target is current.
func (m Model) previewText() string {
	snap, ok := m.engine.Snapshot()
	if !ok || !snap.HasCandidate {
		return ""
	}
	parts := make([]string, len(snap.Preview))
	for i, p := range snap.Preview {
		parts[i] = fmt.Sprintf("%s %s..%s", p.Name,
			shortDate(p.Start), shortDate(p.End))
	}
	prefix := "Preview: "
	if !snap.Validation.Valid {
		prefix = "Invalid: " + snap.Validation.Reason + ". "
	}
	text := prefix + strings.Join(parts, ", ")
	reordered := timeline.Reorder(m.engine.Phases(), snap.Origin, snap.Candidate)
	if note := timeline.AbsorbedNote(reordered, m.engine.Boundary()); note != "" {
		text += " (" + note + ")"
	}
	return text
}

// shortDate drops the year when rendering compact previews.
func shortDate(d civil.Date) string {
	s := dateutil.Format(d)
	if len(s) == len(dateutil.Layout) {
		return s[5:]
	}
	return s
}

func (m Model) helpText() string {
	keys := m.config.Keys
	switch m.mode {
	case ModeDrag:
		return "drag to a new position, release to drop, esc cancel"
	case ModeKeyboard:
		return "↑/↓ move, enter drop, esc cancel"
	case ModePrompt:
		return "enter run, tab complete, esc cancel"
	}

	parts := []string{
		"↑/↓ select",
		keys.Reorder + " reorder",
	}
	if m.config.UI.Mouse {
		parts = append(parts, "drag with mouse")
	}
	if m.pending.HasChanges() {
		parts = append(parts, "u undo", keys.Save+" save", keys.Discard+" discard")
	}
	parts = append(parts, "a add", "r rename", "tab project", "y copy", "q quit")
	return strings.Join(parts, " · ")
}

// phasesTSV renders phases as tab-separated rows with a header line.
func phasesTSV(phases []phase.Phase) string {
	var b strings.Builder
	b.WriteString("Phase\tStart\tEnd\tDays\tBudget\n")
	for _, p := range phases {
		b.WriteString(strings.Join([]string{
			p.Name,
			dateutil.Format(p.Start),
			dateutil.Format(p.End),
			strconv.Itoa(p.Duration()),
			view.FormatBudget(p.Budget),
		}, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
