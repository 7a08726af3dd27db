// Package plan reads and writes project plans as YAML documents.
//
// A plan names a project, its boundary and its phases in order:
//
//	name: Launch
//	start: 2024-01-01
//	end: 2024-01-30
//	phases:
//	  - name: Design
//	    days: 10
//	    budget: 150000
//	  - name: Build
//	    start: 2024-01-11
//	    end: 2024-01-20
//	  - name: Ship
//
// Each phase gives its length either as days or as explicit dates. The last
// phase may omit both; it absorbs whatever is left of the boundary.
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/timeline"
)

// Errors returned while decoding a plan.
var (
	ErrNoPhases      = errors.New("plan has no phases")
	ErrMissingLength = errors.New("phase needs days or start and end")
)

// Document is the YAML form of a plan.
type Document struct {
	Name   string      `yaml:"name"`
	Start  string      `yaml:"start"`
	End    string      `yaml:"end"`
	Phases []PhaseSpec `yaml:"phases"`
}

// PhaseSpec is one phase entry in a Document.
type PhaseSpec struct {
	Name   string `yaml:"name"`
	Days   int    `yaml:"days,omitempty"`
	Start  string `yaml:"start,omitempty"`
	End    string `yaml:"end,omitempty"`
	Budget int64  `yaml:"budget,omitempty"`
}

// Plan is a decoded project with phases tiled across its boundary.
type Plan struct {
	Project *phase.Project
	Phases  []phase.Phase
}

// Decode reads a plan and lays its phases end to end across the project
// boundary. The result is validated before it is returned.
func Decode(r io.Reader) (*Plan, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	project, err := phase.NewProject(doc.Name, doc.Start, doc.End)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if len(doc.Phases) == 0 {
		return nil, ErrNoPhases
	}

	phases := make([]phase.Phase, len(doc.Phases))
	for i, spec := range doc.Phases {
		days, err := spec.days(i == len(doc.Phases)-1)
		if err != nil {
			return nil, fmt.Errorf("phase %d (%s): %w", i+1, spec.Name, err)
		}
		if days == 0 {
			days = 1
		}
		p, err := phase.New(project.ID, spec.Name, doc.Start, days)
		if err != nil {
			return nil, fmt.Errorf("phase %d: %w", i+1, err)
		}
		if spec.Budget < 0 {
			return nil, fmt.Errorf("phase %d (%s): %w", i+1, spec.Name, phase.ErrNegativeBudget)
		}
		p.Budget = spec.Budget
		phases[i] = *p
	}

	b := project.Boundary()
	phases = timeline.Recalculate(phases, b)
	if res := timeline.Validate(phases, b); !res.Valid {
		return nil, fmt.Errorf("plan does not fit %s: %w", b, res.Err())
	}

	return &Plan{Project: project, Phases: phases}, nil
}

// days returns the requested length of a phase. The last phase may leave it
// unset, reported as 0.
func (s PhaseSpec) days(last bool) (int, error) {
	if s.Days < 0 {
		return 0, phase.ErrInvalidDays
	}
	if s.Days > 0 {
		return s.Days, nil
	}
	if s.Start != "" && s.End != "" {
		r, err := dateutil.NewDateRange(s.Start, s.End)
		if err != nil {
			return 0, err
		}
		return r.Days(), nil
	}
	if last {
		return 0, nil
	}
	return 0, ErrMissingLength
}

// Encode writes a project and its phases as a plan document. Phases are
// written with their lengths and explicit dates.
func Encode(w io.Writer, project *phase.Project, phases []phase.Phase) error {
	doc := Document{
		Name:   project.Name,
		Start:  dateutil.Format(project.Start),
		End:    dateutil.Format(project.End),
		Phases: make([]PhaseSpec, len(phases)),
	}
	for i, p := range phases {
		doc.Phases[i] = PhaseSpec{
			Name:   p.Name,
			Days:   p.Duration(),
			Start:  dateutil.Format(p.Start),
			End:    dateutil.Format(p.End),
			Budget: p.Budget,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return enc.Close()
}

// Import decodes a plan and stores it as a new project.
func Import(ctx context.Context, repo phase.Repository, r io.Reader) (*phase.Project, error) {
	pl, err := Decode(r)
	if err != nil {
		return nil, err
	}

	if err := repo.CreateProject(ctx, pl.Project); err != nil {
		return nil, err
	}

	// Each append covers the rest of the boundary; the repository carves it
	// out of the previous phase, which leaves every phase at its planned
	// length.
	end := pl.Project.End
	for _, p := range pl.Phases {
		p.ProjectID = pl.Project.ID
		p.End = end
		if err := repo.CreatePhase(ctx, &p); err != nil {
			err = fmt.Errorf("storing phase %q: %w", p.Name, err)
			// Drop the half-built project so the import can be retried.
			if derr := repo.DeleteProject(context.WithoutCancel(ctx), pl.Project.ID); derr != nil {
				err = errors.Join(err, fmt.Errorf("removing partial project: %w", derr))
			}
			return nil, err
		}
	}

	return pl.Project, nil
}

// Export writes the named project as a plan document.
func Export(ctx context.Context, repo phase.Repository, name string, w io.Writer) error {
	project, err := repo.GetProjectByName(ctx, name)
	if err != nil {
		return err
	}
	phases, err := repo.ListPhases(ctx, project.ID)
	if err != nil {
		return err
	}
	return Encode(w, project, phases)
}
