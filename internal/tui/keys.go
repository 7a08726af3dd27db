package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/tui/commands"
	"github.com/javiermolinar/tramo/internal/tui/input"
)

const unsavedHint = "Unsaved changes! Save (%s) or discard (%s) first"

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("KEY_PRESS",
		zap.String("key", msg.String()),
		zap.Stringer("mode", m.mode),
	)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeKeyboard:
		return m.handleReorderKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	keys := m.config.Keys

	armed := m.quitArmed
	m.quitArmed = false

	// Configurable bindings take precedence over the defaults below.
	switch key {
	case keys.Reorder:
		return m.startKeyboardReorder()
	case keys.Save:
		return m.save()
	case keys.Discard:
		return m.discard()
	}

	n := len(m.engine.Phases())

	switch key {
	case "q":
		if m.pending.HasChanges() && !armed {
			m.quitArmed = true
			m.status.set(fmt.Sprintf("Unsaved changes! Press q again to quit, %s to save", keys.Save))
			return m, nil
		}
		return m, tea.Quit

	// Navigation
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible(m.cursor)
	case "j", "down":
		if m.cursor < n-1 {
			m.cursor++
		}
		m.ensureVisible(m.cursor)
	case "g", "home":
		m.cursor = 0
		m.ensureVisible(m.cursor)
	case "G", "end":
		m.cursor = max(n-1, 0)
		m.ensureVisible(m.cursor)

	// Project navigation
	case "tab", "l", "right":
		return m.switchProject(1)
	case "shift+tab", "h", "left":
		return m.switchProject(-1)

	// Actions
	case "u":
		return m.undo()
	case "y":
		return m.yank()
	case "a":
		return m.openPrompt("/add ")
	case "r":
		p, ok := m.selectedPhase()
		if !ok {
			m.status.set("No phase to rename")
			return m, nil
		}
		return m.openPrompt("/rename " + p.Name)
	case "D":
		return m.deleteSelected()
	case "/":
		return m.openPrompt("/")
	}

	return m, nil
}

// handleDragKeys handles keys while a pointer drag is in progress.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		if err := m.engine.Cancel(); err != nil {
			m.logger.Debug("ERROR", zap.String("context", "cancel"), zap.Error(err))
		}
		m.setMode(ModeNormal, "drag_cancelled")
	}
	return m, nil
}

// handleReorderKeys handles keys in keyboard reorder mode.
func (m Model) handleReorderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.engine.Phases())

	var err error
	switch msg.String() {
	case "k", "up":
		err = m.engine.Step(-1)
	case "j", "down":
		err = m.engine.Step(1)
	case "g", "home":
		err = m.engine.Step(-n)
	case "G", "end":
		err = m.engine.Step(n)
	case "enter", " ", m.config.Keys.Reorder:
		id := m.sessionPhaseID()
		res, cerr := m.engine.Confirm()
		if cerr != nil {
			m.setMode(ModeNormal, "confirm_failed")
			return m, nil
		}
		return m.finishSession(id, res), nil
	case "esc":
		err = m.engine.Abort()
		m.setMode(ModeNormal, "keyboard_aborted")
	}
	if err != nil {
		m.logger.Debug("ERROR", zap.String("context", "keyboard"), zap.Error(err))
	}
	if snap, ok := m.engine.Snapshot(); ok && snap.HasCandidate {
		m.ensureVisible(snap.Candidate)
	}
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.closePrompt()
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.setMode(ModePrompt, "prompt_open")
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.setMode(ModeNormal, "prompt_closed")
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// startKeyboardReorder starts a keyboard session for the focused phase.
func (m Model) startKeyboardReorder() (tea.Model, tea.Cmd) {
	p, ok := m.selectedPhase()
	if !ok {
		m.status.set("No phase to reorder")
		return m, nil
	}
	if err := m.engine.EnterKeyboard(p.ID); err != nil {
		m.status.set(reorderError(err))
		return m, nil
	}
	m.setMode(ModeKeyboard, "keyboard_start")
	return m, nil
}

// sessionPhaseID returns the ID of the phase being reordered.
func (m Model) sessionPhaseID() string {
	snap, ok := m.engine.Snapshot()
	if !ok {
		return ""
	}
	return snap.SelectedID
}

// finishSession applies the outcome of a drop or confirm.
func (m Model) finishSession(id string, res session.Result) Model {
	m.setMode(ModeNormal, "session_"+res.Outcome.String())
	if res.Outcome == session.OutcomeCommitted {
		idx := phase.IndexOf(res.Phases, id)
		name := id
		if idx >= 0 {
			name = res.Phases[idx].Name
		}
		m.pending.Apply("Move: "+name, res.Phases)
	}
	if idx := phase.IndexOf(res.Phases, id); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor(len(res.Phases))
	return m
}

func (m Model) undo() (tea.Model, tea.Cmd) {
	desc, err := m.pending.Undo()
	if errors.Is(err, ErrNothingToUndo) {
		m.status.set("Nothing to undo")
		return m, nil
	}
	id := ""
	if p, ok := m.selectedPhase(); ok {
		id = p.ID
	}
	working := m.pending.Working()
	if err := m.engine.Load(working, m.engine.Boundary()); err != nil {
		m.status.set(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	if idx := phase.IndexOf(working, id); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor(len(working))

	if remaining := m.pending.Count(); remaining > 0 {
		m.status.set(fmt.Sprintf("Undone %s (%d more available)", desc, remaining))
	} else {
		m.status.set(fmt.Sprintf("Undone %s (no more changes)", desc))
	}
	return m, nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	project := m.currentProject()
	if project == nil || !m.pending.HasChanges() {
		m.status.set("No changes to save")
		return m, nil
	}
	m.loading = true
	m.status.set("Saving...")
	return m, commands.SavePhases(m.repo, project, m.pending.Working(), m.pending.Count())
}

func (m Model) discard() (tea.Model, tea.Cmd) {
	if !m.pending.HasChanges() {
		m.status.set("No changes to discard")
		return m, nil
	}
	m.pending.Discard()
	working := m.pending.Working()
	if err := m.engine.Load(working, m.engine.Boundary()); err != nil {
		m.status.set(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.clampCursor(len(working))
	m.status.set("Changes discarded")
	return m, nil
}

// switchProject shows the next (delta 1) or previous (delta -1) project.
func (m Model) switchProject(delta int) (tea.Model, tea.Cmd) {
	if len(m.projects) < 2 {
		return m, nil
	}
	if m.pending.HasChanges() {
		m.status.set(fmt.Sprintf(unsavedHint, m.config.Keys.Save, m.config.Keys.Discard))
		return m, nil
	}
	next := (m.current + delta + len(m.projects)) % len(m.projects)
	m.loading = true
	return m, commands.LoadPhases(m.repo, m.projects[next])
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	project := m.currentProject()
	p, ok := m.selectedPhase()
	if project == nil || !ok {
		m.status.set("No phase to delete")
		return m, nil
	}
	if m.pending.HasChanges() {
		m.status.set(fmt.Sprintf(unsavedHint, m.config.Keys.Save, m.config.Keys.Discard))
		return m, nil
	}
	return m, commands.DeletePhase(m.repo, project, p)
}

// yank copies the shown phases as tab-separated text.
func (m Model) yank() (tea.Model, tea.Cmd) {
	phases := m.engine.Phases()
	if len(phases) == 0 {
		m.status.set("No phases to copy")
		return m, nil
	}
	if err := clipboard.WriteAll(phasesTSV(phases)); err != nil {
		m.status.set(fmt.Sprintf("Copy failed: %v", err))
		return m, nil
	}
	m.status.set(fmt.Sprintf("Copied %d phases", len(phases)))
	return m, nil
}

// reorderError turns engine errors into status text.
func reorderError(err error) string {
	switch {
	case errors.Is(err, session.ErrTooFewPhases):
		return "Need at least two phases to reorder"
	case errors.Is(err, session.ErrSessionActive):
		return "A reorder is already in progress"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
