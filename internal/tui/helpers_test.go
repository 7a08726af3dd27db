package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/tramo/internal/config"
	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/db"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/tui/commands"
)

// samplePhases tiles sampleBoundary with three 10-day phases.
func samplePhases() []phase.Phase {
	return []phase.Phase{
		{ID: "a", ProjectID: "p1", Name: "Design", Start: dateutil.MustParse("2024-01-01"), End: dateutil.MustParse("2024-01-10")},
		{ID: "b", ProjectID: "p1", Name: "Build", Start: dateutil.MustParse("2024-01-11"), End: dateutil.MustParse("2024-01-20")},
		{ID: "c", ProjectID: "p1", Name: "Ship", Start: dateutil.MustParse("2024-01-21"), End: dateutil.MustParse("2024-01-30")},
	}
}

func sampleBoundary() phase.Boundary {
	return phase.Boundary{
		Start: dateutil.MustParse("2024-01-01"),
		End:   dateutil.MustParse("2024-01-30"),
	}
}

func sampleProject() *phase.Project {
	b := sampleBoundary()
	return &phase.Project{ID: "p1", Name: "Launch", Start: b.Start, End: b.End}
}

// testConfig returns defaults that do not depend on the user's home.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Storage.DBPath = "unused.db"
	return cfg
}

// loadedModel returns a sized model showing samplePhases without a store.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New(nil, testConfig())
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return step(t, m, commands.PhasesLoadedMsg{Project: sampleProject(), Phases: samplePhases()})
}

// repoModel returns a model backed by a real store seeded with a project
// of three 10-day phases, already loaded.
func repoModel(t *testing.T) (Model, phase.Repository) {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "tramo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	project, err := phase.NewProject("Launch", "2024-01-01", "2024-01-30")
	require.NoError(t, err)
	require.NoError(t, repo.CreateProject(ctx, project))

	// Each append carves its length from the current last phase, so pass the
	// remaining span to end up with 10/10/10.
	for i, name := range []string{"Design", "Build", "Ship"} {
		p, err := phase.New(project.ID, name, "2024-01-01", 30-10*i)
		require.NoError(t, err)
		require.NoError(t, repo.CreatePhase(ctx, p))
	}

	m := New(repo, testConfig())
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = run(t, m, m.Init())
	require.Len(t, m.engine.Phases(), 3)
	return m, repo
}

// step feeds one message to the model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return model
}

// press feeds a key and returns the model and command.
func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(k))
	model, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return model, cmd
}

// run executes cmd and feeds its messages back until none are left.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func mouse(action tea.MouseAction, button tea.MouseButton, y int) tea.MouseMsg {
	return tea.MouseMsg{X: 10, Y: y, Action: action, Button: button}
}

// applyLoaded loads phases for sampleProject.
func applyLoaded(t *testing.T, m Model, phases []phase.Phase) Model {
	t.Helper()
	return step(t, m, commands.PhasesLoadedMsg{Project: sampleProject(), Phases: phases})
}
