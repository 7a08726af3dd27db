package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/tramo/internal/config"
	"github.com/javiermolinar/tramo/internal/db"
	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/session"
	"github.com/javiermolinar/tramo/internal/timeline"
)

func newTestRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "tramo.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "unused.db")
	cfg.Log.DebugPath = filepath.Join(t.TempDir(), "debug.log")
	return cfg
}

// run executes one CLI invocation against repo and returns its output.
func run(t *testing.T, repo phase.Repository, stdin string, args ...string) (string, error) {
	t.Helper()
	DisableColor()

	app := NewApp(repo, testConfig(t))
	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	app.root.SetIn(strings.NewReader(stdin))
	app.root.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, repo phase.Repository, args ...string) string {
	t.Helper()
	out, err := run(t, repo, "", args...)
	if err != nil {
		t.Fatalf("tramo %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// seedWebsite creates Website 2024-01-01..01-30 with Design 5, Build 20, Ship 5.
func seedWebsite(t *testing.T, repo phase.Repository) {
	t.Helper()
	mustRun(t, repo, "project", "add", "Website", "2024-01-01", "2024-01-30")
	mustRun(t, repo, "phase", "add", "Website", "Design", "30")
	mustRun(t, repo, "phase", "add", "Website", "Build", "25", "--budget", "1200.50")
	mustRun(t, repo, "phase", "add", "Website", "Ship", "5d")
}

func storedPhases(t *testing.T, repo phase.Repository, project string) []phase.Phase {
	t.Helper()
	ctx := context.Background()
	p, err := repo.GetProjectByName(ctx, project)
	if err != nil {
		t.Fatalf("GetProjectByName: %v", err)
	}
	phases, err := repo.ListPhases(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListPhases: %v", err)
	}
	return phases
}

type span struct{ name, start, end string }

func assertSpans(t *testing.T, phases []phase.Phase, want []span) {
	t.Helper()
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(phases))
	}
	for i, w := range want {
		p := phases[i]
		got := span{p.Name, dateutil.Format(p.Start), dateutil.Format(p.End)}
		if got != w {
			t.Errorf("phase %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, newTestRepo(t), "version")
	if !strings.HasPrefix(out, "tramo dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestProjectAddAndList(t *testing.T) {
	repo := newTestRepo(t)

	out := mustRun(t, repo, "project", "list")
	if !strings.Contains(out, "No projects yet") {
		t.Errorf("expected empty message, got %q", out)
	}

	out = mustRun(t, repo, "project", "add", "Website", "2024-01-01", "2024-01-30")
	if !strings.Contains(out, "Created project Website: 2024-01-01..2024-01-30 (30 days)") {
		t.Errorf("unexpected add output %q", out)
	}

	mustRun(t, repo, "phase", "add", "Website", "Design", "30")
	out = mustRun(t, repo, "project", "ls")
	if !strings.Contains(out, "Website") || !strings.Contains(out, "30 days, 1 phases") {
		t.Errorf("unexpected list output %q", out)
	}
}

func TestProjectAdd_Duplicate(t *testing.T) {
	repo := newTestRepo(t)
	mustRun(t, repo, "project", "add", "Website", "2024-01-01", "2024-01-30")

	_, err := run(t, repo, "", "project", "add", "Website", "2024-02-01", "2024-02-10")
	if !errors.Is(err, phase.ErrDuplicateProject) {
		t.Errorf("expected ErrDuplicateProject, got %v", err)
	}
}

func TestProjectAdd_EndBeforeStart(t *testing.T) {
	if _, err := run(t, newTestRepo(t), "", "project", "add", "Website", "2024-02-01", "2024-01-01"); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestPhaseAdd_CarvesFromLast(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	phases := storedPhases(t, repo, "Website")
	assertSpans(t, phases, []span{
		{"Design", "2024-01-01", "2024-01-05"},
		{"Build", "2024-01-06", "2024-01-25"},
		{"Ship", "2024-01-26", "2024-01-30"},
	})
	if phases[1].Budget != 120050 {
		t.Errorf("expected Build budget 120050, got %d", phases[1].Budget)
	}
}

func TestPhaseAdd_TooLong(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	// Ship has only 5 days left to give.
	if _, err := run(t, repo, "", "phase", "add", "Website", "Launch", "5"); !errors.Is(err, timeline.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestPhaseAdd_BadArgs(t *testing.T) {
	repo := newTestRepo(t)
	mustRun(t, repo, "project", "add", "Website", "2024-01-01", "2024-01-30")

	tests := []struct {
		name string
		args []string
	}{
		{"zero days", []string{"phase", "add", "Website", "Design", "0"}},
		{"days not a number", []string{"phase", "add", "Website", "Design", "ten"}},
		{"bad budget", []string{"phase", "add", "Website", "Design", "5", "--budget", "1.234"}},
		{"unknown project", []string{"phase", "add", "Nope", "Design", "5"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := run(t, repo, "", tc.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPhaseRenameAndRemove(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "phase", "rename", "Website", "2", "Build", "and", "test")
	if !strings.Contains(out, "Renamed Build to Build and test") {
		t.Errorf("unexpected rename output %q", out)
	}

	mustRun(t, repo, "phase", "rm", "Website", "1")
	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Build and test", "2024-01-01", "2024-01-20"},
		{"Ship", "2024-01-21", "2024-01-30"},
	})

	if _, err := run(t, repo, "", "phase", "rm", "Website", "3"); err == nil {
		t.Error("expected out of range error")
	}
}

func TestShow(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "show", "Website")
	for _, want := range []string{
		"=== Website ===",
		"2024-01-01..2024-01-30 (30 days)",
		"2024-01-06  2024-01-25     20",
		"1,200.50",
		"Timeline: [",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShow_NoPhases(t *testing.T) {
	repo := newTestRepo(t)
	mustRun(t, repo, "project", "add", "Website", "2024-01-01", "2024-01-30")

	out := mustRun(t, repo, "show", "Website")
	if !strings.Contains(out, "No phases yet") {
		t.Errorf("expected empty message, got %q", out)
	}
}

func TestMove_Commits(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "move", "Website", "3", "1")
	for _, want := range []string{
		"Reordering Ship",
		"Moved Ship to position 1 of 3. Dates recalculated.",
		"Saved 3 phases",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("move output missing %q:\n%s", want, out)
		}
	}

	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Ship", "2024-01-01", "2024-01-05"},
		{"Design", "2024-01-06", "2024-01-10"},
		{"Build", "2024-01-11", "2024-01-30"},
	})
}

func TestMove_DryRun(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)
	before := storedPhases(t, repo, "Website")

	out := mustRun(t, repo, "move", "Website", "1", "3", "--dry-run")
	if !strings.Contains(out, "Dry run") {
		t.Errorf("expected dry run notice, got %q", out)
	}
	if !phase.SameIdentitySet(before, storedPhases(t, repo, "Website")) {
		t.Fatal("phase set changed")
	}
	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Design", "2024-01-01", "2024-01-05"},
		{"Build", "2024-01-06", "2024-01-25"},
		{"Ship", "2024-01-26", "2024-01-30"},
	})
}

// failingSaveRepo stores everything except a new phase order.
type failingSaveRepo struct {
	*db.SQLite
}

var errSaveFailed = errors.New("disk full")

func (failingSaveRepo) ReplacePhases(context.Context, string, []phase.Phase) error {
	return errSaveFailed
}

func TestMove_SaveFails(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)
	before := storedPhases(t, repo, "Website")

	out, err := run(t, failingSaveRepo{repo}, "", "move", "Website", "3", "1")
	if !errors.Is(err, errSaveFailed) {
		t.Fatalf("expected save error, got %v", err)
	}
	if strings.Contains(out, "Dates recalculated") || strings.Contains(out, "Saved") {
		t.Errorf("failed save announced as success:\n%s", out)
	}
	if !strings.Contains(out, "Move of Ship not saved") {
		t.Errorf("expected failure notice, got %q", out)
	}
	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Design", before[0].Start.String(), before[0].End.String()},
		{"Build", before[1].Start.String(), before[1].End.String()},
		{"Ship", before[2].Start.String(), before[2].End.String()},
	})
}

func TestMove_SamePosition(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "move", "Website", "2", "2")
	if !strings.Contains(out, "Build kept at position 2 of 3.") {
		t.Errorf("expected unchanged announcement, got %q", out)
	}
	if strings.Contains(out, "Saved") {
		t.Errorf("unchanged move should not save: %q", out)
	}
}

func TestMove_Errors(t *testing.T) {
	repo := newTestRepo(t)
	mustRun(t, repo, "project", "add", "Solo", "2024-01-01", "2024-01-10")
	mustRun(t, repo, "phase", "add", "Solo", "Only", "10")

	if _, err := run(t, repo, "", "move", "Solo", "1", "1"); !errors.Is(err, session.ErrTooFewPhases) {
		t.Errorf("expected ErrTooFewPhases, got %v", err)
	}

	seedWebsite(t, repo)
	if _, err := run(t, repo, "", "move", "Website", "0", "2"); err == nil {
		t.Error("expected position error")
	}
	if _, err := run(t, repo, "", "move", "Website", "1", "4"); err == nil {
		t.Error("expected position error")
	}
}

func TestValidate(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "validate", "Website")
	if !strings.Contains(out, "✓ 3 phases cover 2024-01-01..2024-01-30 (30 days)") {
		t.Errorf("unexpected validate output %q", out)
	}

	mustRun(t, repo, "project", "add", "Empty", "2024-01-01", "2024-01-30")
	if _, err := run(t, repo, "", "validate", "Empty"); !errors.Is(err, timeline.ErrInvalid) {
		t.Errorf("expected ErrInvalid for a project without phases, got %v", err)
	}
}

func TestProjectRange(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	out := mustRun(t, repo, "project", "range", "Website", "2024-01-01", "2024-02-09")
	if !strings.Contains(out, "Ship gains 10 days") {
		t.Errorf("expected absorbed days note, got %q", out)
	}
	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Design", "2024-01-01", "2024-01-05"},
		{"Build", "2024-01-06", "2024-01-25"},
		{"Ship", "2024-01-26", "2024-02-09"},
	})
}

func TestProjectRemove(t *testing.T) {
	repo := newTestRepo(t)
	seedWebsite(t, repo)

	mustRun(t, repo, "project", "rm", "Website")
	if _, err := repo.GetProjectByName(context.Background(), "Website"); !errors.Is(err, phase.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestImportExport_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	doc := `name: Website
start: 2024-01-01
end: 2024-01-30
phases:
  - name: Design
    days: 5
  - name: Build
    days: 20
    budget: 120050
  - name: Ship
`
	out, err := run(t, repo, doc, "import", "-")
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported Website") {
		t.Errorf("unexpected import output %q", out)
	}
	assertSpans(t, storedPhases(t, repo, "Website"), []span{
		{"Design", "2024-01-01", "2024-01-05"},
		{"Build", "2024-01-06", "2024-01-25"},
		{"Ship", "2024-01-26", "2024-01-30"},
	})

	path := filepath.Join(t.TempDir(), "website.yaml")
	mustRun(t, repo, "export", "Website", "-o", path)

	// Import the exported plan into a fresh store.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	other := newTestRepo(t)
	if _, err := run(t, other, string(data), "import", "-"); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	assertSpans(t, storedPhases(t, other, "Website"), []span{
		{"Design", "2024-01-01", "2024-01-05"},
		{"Build", "2024-01-06", "2024-01-25"},
		{"Ship", "2024-01-26", "2024-01-30"},
	})
	if got := storedPhases(t, other, "Website")[1].Budget; got != 120050 {
		t.Errorf("expected budget to survive export, got %d", got)
	}
}

func TestImport_MissingFile(t *testing.T) {
	if _, err := run(t, newTestRepo(t), "", "import", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// Decline editing: the defaults are written and shown.
	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}
	if !strings.Contains(out.String(), "Created "+path) {
		t.Errorf("expected file creation notice, got %q", out.String())
	}
	if !strings.Contains(out.String(), "reorder    = ctrl+r") {
		t.Errorf("expected key bindings in output, got %q", out.String())
	}

	// Edit: keep db path, switch theme, disable mouse, rebind reorder.
	input := "y\n\nlatte\nfalse\nctrl+o\n\n\n\n"
	out.Reset()
	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive edit: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != "latte" || cfg.UI.Mouse || cfg.Keys.Reorder != "ctrl+o" {
		t.Errorf("edits not saved: %+v", cfg)
	}
	if cfg.Keys.Save != "ctrl+s" {
		t.Errorf("expected save key unchanged, got %s", cfg.Keys.Save)
	}
}
