package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/tramo/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor(len(m.engine.Phases()))
		return m, nil

	case commands.ProjectsLoadedMsg:
		return m.applyProjects(msg)

	case commands.PhasesLoadedMsg:
		return m.applyPhases(msg)

	case commands.SavedMsg:
		m.pending.Reset(msg.Phases)
		m.loading = false
		m.status.set(fmt.Sprintf("Saved %d change(s) to %s", msg.Changes, msg.Project.Name))
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.logger.Debug("ERROR", zap.Error(msg.Err))
		m.status.text = fmt.Sprintf("Error: %v", msg.Err)
		m.status.isError = true
		m.status.until = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.status.set(msg.Msg)
		m.status.until = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if !m.status.until.IsZero() && time.Now().After(m.status.until) {
			m.status.set("")
		}
		return m, nil
	}

	// Handle prompt input when in prompt mode
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyProjects stores the project list and loads the focused project.
func (m Model) applyProjects(msg commands.ProjectsLoadedMsg) (tea.Model, tea.Cmd) {
	focus := ""
	if p := m.currentProject(); p != nil {
		focus = p.ID
	}

	m.projects = msg.Projects
	m.current = 0
	for i, p := range m.projects {
		if msg.Select != "" && p.Name == msg.Select {
			m.current = i
			break
		}
		if msg.Select == "" && p.ID == focus {
			m.current = i
		}
	}

	if len(m.projects) == 0 {
		m.loading = false
		m.status.set("No projects yet. Create one with: tramo project add NAME START END")
		return m, nil
	}
	if msg.Select != "" && m.projects[m.current].Name != msg.Select {
		m.status.set(fmt.Sprintf("Project %q not found", msg.Select))
	}
	m.loading = true
	return m, commands.LoadPhases(m.repo, m.projects[m.current])
}

// applyPhases loads a project's stored phases into the engine.
func (m Model) applyPhases(msg commands.PhasesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	idx := -1
	for i, p := range m.projects {
		if p.ID == msg.Project.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.projects = append(m.projects, msg.Project)
		idx = len(m.projects) - 1
	}
	if idx != m.current {
		m.cursor = 0
		m.scrollOffset = 0
	}
	m.projects[idx] = msg.Project
	m.current = idx

	if m.engine.IsActive() {
		_ = m.engine.Cancel()
		m.setMode(ModeNormal, "reload")
	}
	if err := m.engine.Load(msg.Phases, msg.Project.Boundary()); err != nil {
		return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
	}
	m.pending.Reset(msg.Phases)
	m.clampCursor(len(msg.Phases))
	if msg.Status != "" {
		m.status.set(msg.Status)
	}
	return m, nil
}
