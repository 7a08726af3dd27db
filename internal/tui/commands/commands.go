// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/timeline"
)

// ProjectsLoadedMsg is sent when the project list is loaded.
type ProjectsLoadedMsg struct {
	Projects []*phase.Project
	Select   string // Project name to focus, empty keeps the current one
}

// PhasesLoadedMsg is sent when a project's phases are loaded from the store.
type PhasesLoadedMsg struct {
	Project *phase.Project
	Phases  []phase.Phase
	Status  string // Optional status to show once loaded
}

// SavedMsg is sent when pending changes are persisted.
type SavedMsg struct {
	Project *phase.Project
	Phases  []phase.Phase
	Changes int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadProjects loads every project.
func LoadProjects(repo phase.Repository, selectName string) tea.Cmd {
	return func() tea.Msg {
		projects, err := repo.ListProjects(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ProjectsLoadedMsg{Projects: projects, Select: selectName}
	}
}

// LoadPhases loads the phases of a project.
func LoadPhases(repo phase.Repository, project *phase.Project) tea.Cmd {
	return func() tea.Msg {
		return loadPhases(context.Background(), repo, project, "")
	}
}

// SavePhases persists a reordered collection for a project.
func SavePhases(repo phase.Repository, project *phase.Project, phases []phase.Phase, changes int) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ReplacePhases(context.Background(), project.ID, phases); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving phases: %w", err)}
		}
		return SavedMsg{Project: project, Phases: phases, Changes: changes}
	}
}

// AddPhase appends a phase of the given length to a project.
func AddPhase(repo phase.Repository, project *phase.Project, name string, days int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := phase.New(project.ID, name, "", days)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreatePhase(ctx, p); err != nil {
			return ErrMsg{Err: fmt.Errorf("adding phase: %w", err)}
		}
		return loadPhases(ctx, repo, project, fmt.Sprintf("Added %s (%d days)", p.Name, days))
	}
}

// RenamePhase renames a phase and reloads the project.
func RenamePhase(repo phase.Repository, project *phase.Project, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.RenamePhase(ctx, id, name); err != nil {
			return ErrMsg{Err: fmt.Errorf("renaming phase: %w", err)}
		}
		return loadPhases(ctx, repo, project, "Renamed to "+name)
	}
}

// DeletePhase removes a phase and reloads the project.
func DeletePhase(repo phase.Repository, project *phase.Project, p phase.Phase) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.DeletePhase(ctx, p.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting phase: %w", err)}
		}
		return loadPhases(ctx, repo, project, "Deleted "+p.Name)
	}
}

// UpdateRange changes a project's boundary and reloads its re-tiled phases.
func UpdateRange(repo phase.Repository, project *phase.Project, b phase.Boundary) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		before, err := repo.ListPhases(ctx, project.ID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.UpdateProjectRange(ctx, project.ID, b.Start, b.End); err != nil {
			return ErrMsg{Err: fmt.Errorf("updating range: %w", err)}
		}
		status := "Range set to " + b.String()
		if note := timeline.AbsorbedNote(before, b); note != "" {
			status += "; " + note
		}
		return loadPhases(ctx, repo, project, status)
	}
}

func loadPhases(ctx context.Context, repo phase.Repository, project *phase.Project, status string) tea.Msg {
	// Re-read the project so boundary edits made elsewhere are picked up.
	fresh, err := repo.GetProject(ctx, project.ID)
	if err != nil {
		return ErrMsg{Err: err}
	}
	phases, err := repo.ListPhases(ctx, project.ID)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return PhasesLoadedMsg{Project: fresh, Phases: phases, Status: status}
}
