package phase

import (
	"context"

	"cloud.google.com/go/civil"
)

// Repository defines the storage interface for projects and phases.
type Repository interface {
	// CreateProject adds a new project and assigns its ID.
	// Returns ErrDuplicateProject if the name is taken.
	CreateProject(ctx context.Context, p *Project) error

	// GetProject retrieves a project by ID.
	// Returns ErrProjectNotFound if it does not exist.
	GetProject(ctx context.Context, id string) (*Project, error)

	// GetProjectByName retrieves a project by its unique name.
	GetProjectByName(ctx context.Context, name string) (*Project, error)

	// ListProjects returns all projects ordered by start date.
	ListProjects(ctx context.Context) ([]*Project, error)

	// DeleteProject removes a project and all its phases.
	DeleteProject(ctx context.Context, id string) error

	// UpdateProjectRange changes a project's boundary and re-tiles its phases
	// so they still cover the new range exactly.
	UpdateProjectRange(ctx context.Context, id string, start, end civil.Date) error

	// CreatePhase appends a phase after the project's last phase and assigns
	// its ID and dates. The phase's Duration is carved out of the current last
	// phase; the first phase of a project spans the whole boundary.
	CreatePhase(ctx context.Context, p *Phase) error

	// ListPhases returns a project's phases in position order.
	ListPhases(ctx context.Context, projectID string) ([]Phase, error)

	// RenamePhase updates a phase's display name.
	RenamePhase(ctx context.Context, id, name string) error

	// DeletePhase removes a phase and re-tiles the remaining ones so the new
	// last phase absorbs the freed days.
	DeletePhase(ctx context.Context, id string) error

	// ReplacePhases stores a new order and new dates for all of a project's
	// phases atomically. The collection must be valid for the project boundary
	// and contain exactly the stored phase IDs.
	ReplacePhases(ctx context.Context, projectID string, phases []Phase) error

	// Close releases any resources held by the repository.
	Close() error
}
