package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// handleMouseMsg drives pointer reordering: press on a row picks it up,
// motion updates the drop target and release drops it.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.config.UI.Mouse {
		return m, nil
	}
	if msg.Action != tea.MouseActionMotion {
		m.logger.Debug("MOUSE",
			zap.String("event", msg.String()),
			zap.Int("x", msg.X),
			zap.Int("y", msg.Y),
			zap.Stringer("mode", m.mode),
		)
	}

	switch m.mode {
	case ModeNormal:
		return m.handleMouseNormal(msg)
	case ModeDrag:
		return m.handleMouseDrag(msg)
	}
	return m, nil
}

func (m Model) handleMouseNormal(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	phases := m.engine.Phases()
	n := len(phases)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible(m.cursor)
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.cursor < n-1 {
			m.cursor++
		}
		m.ensureVisible(m.cursor)
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	m.quitArmed = false
	row, ok := m.rowAt(msg.Y, n)
	if !ok {
		return m, nil
	}
	m.cursor = row
	if err := m.engine.PickUp(phases[row].ID); err != nil {
		m.status.set(reorderError(err))
		return m, nil
	}
	m.setMode(ModeDrag, "pointer_pickup")
	return m, nil
}

func (m Model) handleMouseDrag(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		rows := m.rowGeometry(len(m.engine.Phases()))
		if err := m.engine.DragTo(rows, msg.Y); err != nil {
			m.logger.Debug("ERROR", zap.String("context", "drag"), zap.Error(err))
		}
		return m, nil

	case tea.MouseActionRelease:
		// Take the release position as the final target.
		rows := m.rowGeometry(len(m.engine.Phases()))
		_ = m.engine.DragTo(rows, msg.Y)

		id := m.sessionPhaseID()
		res, err := m.engine.Drop()
		if err != nil {
			m.setMode(ModeNormal, "drop_failed")
			return m, nil
		}
		return m.finishSession(id, res), nil

	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight {
			_ = m.engine.Cancel()
			m.setMode(ModeNormal, "drag_cancelled")
		}
	}
	return m, nil
}
