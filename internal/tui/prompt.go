package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/tui/commands"
	"github.com/javiermolinar/tramo/internal/tui/input"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/add",
		Description: "Append a phase: /add NAME DAYS",
	},
	{
		Name:        "/rename",
		Description: "Rename the focused phase",
	},
	{
		Name:        "/range",
		Description: "Change the project range: /range START END",
	},
	{
		Name:        "/delete",
		Description: "Delete the focused phase",
	},
	{
		Name:        "/help",
		Description: "Show available commands",
	},
}

// handlePromptSubmit runs a prompt command.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(value) == "" {
		return m, nil
	}

	name, args, err := input.SplitCommand(value)
	if err != nil {
		m.status.set(err.Error())
		return m, nil
	}

	project := m.currentProject()
	if project == nil && name != "/help" {
		m.status.set("No project selected")
		return m, nil
	}

	switch name {
	case "/add":
		if m.pending.HasChanges() {
			m.status.set(fmt.Sprintf(unsavedHint, m.config.Keys.Save, m.config.Keys.Discard))
			return m, nil
		}
		phaseName, days, err := input.ParsePhase(args)
		if err != nil {
			m.status.set(err.Error())
			return m, nil
		}
		return m, commands.AddPhase(m.repo, project, phaseName, days)

	case "/rename":
		p, ok := m.selectedPhase()
		if !ok {
			m.status.set("No phase to rename")
			return m, nil
		}
		if args == "" {
			m.status.set("Rename requires a name")
			return m, nil
		}
		if m.pending.HasChanges() {
			m.status.set(fmt.Sprintf(unsavedHint, m.config.Keys.Save, m.config.Keys.Discard))
			return m, nil
		}
		return m, commands.RenamePhase(m.repo, project, p.ID, args)

	case "/range":
		if m.pending.HasChanges() {
			m.status.set(fmt.Sprintf(unsavedHint, m.config.Keys.Save, m.config.Keys.Discard))
			return m, nil
		}
		start, end, err := input.ParseRange(args)
		if err != nil {
			m.status.set(err.Error())
			return m, nil
		}
		b, err := phase.NewBoundary(start, end)
		if err != nil {
			m.status.set(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		return m, commands.UpdateRange(m.repo, project, b)

	case "/delete":
		return m.deleteSelected()

	case "/help":
		names := make([]string, len(promptCommands))
		for i, cmd := range promptCommands {
			names[i] = cmd.Name
		}
		m.status.set("Commands: " + strings.Join(names, ", "))
		return m, nil

	default:
		m.status.set(fmt.Sprintf("Unknown command: %s", name))
		return m, nil
	}
}

// promptHint describes the command being typed, if any.
func (m Model) promptHint() string {
	matches := input.PromptMatchingCommands(m.prompt.Value(), promptCommands)
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, len(matches))
	for i, cmd := range matches {
		parts[i] = cmd.Name + "  " + cmd.Description
	}
	return strings.Join(parts, "  |  ")
}
