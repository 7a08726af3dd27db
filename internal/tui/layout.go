package tui

import (
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/tui/view"
)

// tableHeight returns the lines available to the phase table.
func (m Model) tableHeight() int {
	return max(m.height-view.HeaderHeight-view.FooterHeight, 0)
}

// visibleRows returns how many phase rows fit on screen.
func (m Model) visibleRows() int {
	return max(m.tableHeight()-view.TableChromeTop-view.TableChromeBottom, 0)
}

// firstRowY is the screen line of the first visible phase row.
func (m Model) firstRowY() int {
	return view.HeaderHeight + view.TableChromeTop
}

// rowGeometry returns the screen extent of n phase rows, including rows
// scrolled out of view, so pointer positions map onto insertion gaps.
func (m Model) rowGeometry(n int) []session.Row {
	rows := make([]session.Row, n)
	top := m.firstRowY() - m.scrollOffset
	for i := range rows {
		rows[i] = session.Row{Top: top + i, Height: 1}
	}
	return rows
}

// rowAt returns the phase row under screen line y.
func (m Model) rowAt(y, n int) (int, bool) {
	visible := m.visibleRows()
	offset := y - m.firstRowY()
	if offset < 0 || offset >= visible {
		return 0, false
	}
	idx := offset + m.scrollOffset
	if idx >= n {
		return 0, false
	}
	return idx, true
}

// ensureVisible scrolls so row idx is on screen.
func (m *Model) ensureVisible(idx int) {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if idx < m.scrollOffset {
		m.scrollOffset = idx
	}
	if idx >= m.scrollOffset+visible {
		m.scrollOffset = idx - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// clampCursor keeps the cursor and scroll offset inside n rows.
func (m *Model) clampCursor(n int) {
	if n == 0 {
		m.cursor = 0
		m.scrollOffset = 0
		return
	}
	m.cursor = min(max(m.cursor, 0), n-1)
	if m.scrollOffset > n-1 {
		m.scrollOffset = n - 1
	}
	m.ensureVisible(m.cursor)
}
