package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
)

// fakeRepo implements the calls the commands make; anything else panics
// through the nil embedded interface.
type fakeRepo struct {
	phase.Repository

	project  *phase.Project
	phases   []phase.Phase
	replaced []phase.Phase
	err      error
}

func (f *fakeRepo) ListProjects(ctx context.Context) ([]*phase.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*phase.Project{f.project}, nil
}

func (f *fakeRepo) GetProject(ctx context.Context, id string) (*phase.Project, error) {
	if id != f.project.ID {
		return nil, phase.ErrProjectNotFound
	}
	return f.project, nil
}

func (f *fakeRepo) ListPhases(ctx context.Context, projectID string) ([]phase.Phase, error) {
	return phase.Clone(f.phases), nil
}

func (f *fakeRepo) ReplacePhases(ctx context.Context, projectID string, phases []phase.Phase) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = phase.Clone(phases)
	return nil
}

func (f *fakeRepo) RenamePhase(ctx context.Context, id, name string) error {
	for i := range f.phases {
		if f.phases[i].ID == id {
			f.phases[i].Name = name
			return nil
		}
	}
	return phase.ErrPhaseNotFound
}

func (f *fakeRepo) UpdateProjectRange(ctx context.Context, id string, start, end civil.Date) error {
	if f.err != nil {
		return f.err
	}
	f.project.Start, f.project.End = start, end
	return nil
}

func newFake() *fakeRepo {
	project := &phase.Project{
		ID:    "p",
		Name:  "Launch",
		Start: dateutil.MustParse("2024-01-01"),
		End:   dateutil.MustParse("2024-01-30"),
	}
	return &fakeRepo{
		project: project,
		phases: []phase.Phase{
			{ID: "a", ProjectID: "p", Name: "Design", Start: dateutil.MustParse("2024-01-01"), End: dateutil.MustParse("2024-01-15")},
			{ID: "b", ProjectID: "p", Name: "Build", Start: dateutil.MustParse("2024-01-16"), End: dateutil.MustParse("2024-01-30")},
		},
	}
}

func TestLoadProjects(t *testing.T) {
	repo := newFake()

	msg := LoadProjects(repo, "Launch")()
	loaded, ok := msg.(ProjectsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ProjectsLoadedMsg", msg)
	}
	if len(loaded.Projects) != 1 || loaded.Select != "Launch" {
		t.Fatalf("unexpected message: %+v", loaded)
	}

	repo.err = errors.New("boom")
	if _, ok := LoadProjects(repo, "")().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg on repository error")
	}
}

func TestLoadPhases(t *testing.T) {
	repo := newFake()

	msg := LoadPhases(repo, repo.project)()
	loaded, ok := msg.(PhasesLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want PhasesLoadedMsg", msg)
	}
	if len(loaded.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(loaded.Phases))
	}
}

func TestSavePhases(t *testing.T) {
	repo := newFake()
	reordered := []phase.Phase{repo.phases[1], repo.phases[0]}

	msg := SavePhases(repo, repo.project, reordered, 1)()
	saved, ok := msg.(SavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want SavedMsg", msg)
	}
	if saved.Changes != 1 {
		t.Fatalf("changes = %d, want 1", saved.Changes)
	}
	if len(repo.replaced) != 2 || repo.replaced[0].ID != "b" {
		t.Fatalf("replace not forwarded: %+v", repo.replaced)
	}

	repo.err = errors.New("locked")
	if _, ok := SavePhases(repo, repo.project, reordered, 1)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg when saving fails")
	}
}

func TestRenamePhase(t *testing.T) {
	repo := newFake()

	msg := RenamePhase(repo, repo.project, "a", "Discovery")()
	loaded, ok := msg.(PhasesLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want PhasesLoadedMsg", msg)
	}
	if loaded.Phases[0].Name != "Discovery" {
		t.Fatalf("name = %q, want Discovery", loaded.Phases[0].Name)
	}
	if loaded.Status == "" {
		t.Fatal("expected a status message")
	}

	if _, ok := RenamePhase(repo, repo.project, "zzz", "x")().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg for unknown phase")
	}
}

func TestUpdateRange(t *testing.T) {
	repo := newFake()
	b := phase.Boundary{Start: dateutil.MustParse("2024-01-01"), End: dateutil.MustParse("2024-02-04")}

	msg := UpdateRange(repo, repo.project, b)()
	loaded, ok := msg.(PhasesLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want PhasesLoadedMsg", msg)
	}
	if !strings.Contains(loaded.Status, "Build gains 5 days") {
		t.Fatalf("status = %q, want the absorbed days", loaded.Status)
	}
	if loaded.Project.End != b.End {
		t.Fatalf("end = %s, want %s", loaded.Project.End, b.End)
	}

	repo.err = errors.New("locked")
	if _, ok := UpdateRange(repo, repo.project, b)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg when the update fails")
	}
}
