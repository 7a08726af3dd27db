// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/timeline"
)

// SQLite implements phase.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ phase.Repository = (*SQLite)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateProject adds a new project.
// Returns phase.ErrDuplicateProject if the name is already used.
func (s *SQLite) CreateProject(ctx context.Context, p *phase.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE name = ?`, p.Name).Scan(&count); err != nil {
		return fmt.Errorf("checking project name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", phase.ErrDuplicateProject, p.Name)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO projects (id, name, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		p.ID,
		p.Name,
		dateutil.Format(p.Start),
		dateutil.Format(p.End),
		p.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const projectColumns = `id, name, start_date, end_date, created_at`

// GetProject retrieves a project by ID.
func (s *SQLite) GetProject(ctx context.Context, id string) (*phase.Project, error) {
	return getProject(ctx, s.db, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
}

// GetProjectByName retrieves a project by name.
func (s *SQLite) GetProjectByName(ctx context.Context, name string) (*phase.Project, error) {
	return getProject(ctx, s.db, `SELECT `+projectColumns+` FROM projects WHERE name = ?`, name)
}

func getProject(ctx context.Context, q queryer, query string, arg string) (*phase.Project, error) {
	p, err := scanProject(q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", phase.ErrProjectNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by start date.
func (s *SQLite) ListProjects(ctx context.Context) ([]*phase.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY start_date, name`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*phase.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	return projects, nil
}

// DeleteProject removes a project and its phases.
func (s *SQLite) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phases WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting phases: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", phase.ErrProjectNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateProjectRange changes a project's boundary and re-tiles its phases.
// The change is rejected if the phases no longer fit the new range.
func (s *SQLite) UpdateProjectRange(ctx context.Context, id string, start, end civil.Date) error {
	if end.Before(start) {
		return dateutil.ErrEndDateBeforeStart
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getProject(ctx, tx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		return err
	}

	phases, err := listPhases(ctx, tx, id)
	if err != nil {
		return err
	}

	b := phase.Boundary{Start: start, End: end}
	if len(phases) > 0 {
		phases = timeline.Recalculate(phases, b)
		if res := timeline.Validate(phases, b); !res.Valid {
			return fmt.Errorf("re-tiling phases for %s: %w", b, res.Err())
		}
		if err := writePhases(ctx, tx, phases); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET start_date = ?, end_date = ? WHERE id = ?`,
		dateutil.Format(start), dateutil.Format(end), id,
	); err != nil {
		return fmt.Errorf("updating project range: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreatePhase appends a phase to its project, carving its duration out of
// the current last phase.
func (s *SQLite) CreatePhase(ctx context.Context, p *phase.Phase) error {
	if p.Budget < 0 {
		return phase.ErrNegativeBudget
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	project, err := getProject(ctx, tx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, p.ProjectID)
	if err != nil {
		return err
	}
	existing, err := listPhases(ctx, tx, p.ProjectID)
	if err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	days := max(p.Duration(), 1)
	tiled, res := timeline.Append(existing, *p, days, project.Boundary())
	if !res.Valid {
		return fmt.Errorf("adding phase %q: %w", p.Name, res.Err())
	}

	added := tiled[len(tiled)-1]
	query := `
		INSERT INTO phases (id, project_id, name, position, start_date, end_date, budget, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		added.ID,
		added.ProjectID,
		added.Name,
		len(tiled)-1,
		dateutil.Format(added.Start),
		dateutil.Format(added.End),
		added.Budget,
		added.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}

	if err := writePhases(ctx, tx, tiled[:len(tiled)-1]); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	p.Start, p.End = added.Start, added.End
	return nil
}

// ListPhases returns a project's phases in position order.
func (s *SQLite) ListPhases(ctx context.Context, projectID string) ([]phase.Phase, error) {
	return listPhases(ctx, s.db, projectID)
}

// RenamePhase updates a phase's name.
func (s *SQLite) RenamePhase(ctx context.Context, id, name string) error {
	if name == "" {
		return phase.ErrEmptyName
	}

	result, err := s.db.ExecContext(ctx, `UPDATE phases SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming phase: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", phase.ErrPhaseNotFound, id)
	}

	return nil
}

// DeletePhase removes a phase and re-tiles the rest of its project.
func (s *SQLite) DeletePhase(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var projectID string
	err = tx.QueryRowContext(ctx, `SELECT project_id FROM phases WHERE id = ?`, id).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", phase.ErrPhaseNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("querying phase: %w", err)
	}

	project, err := getProject(ctx, tx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return err
	}
	phases, err := listPhases(ctx, tx, projectID)
	if err != nil {
		return err
	}

	rest, res, _ := timeline.Remove(phases, id, project.Boundary())
	if len(rest) > 0 && !res.Valid {
		return fmt.Errorf("re-tiling phases: %w", res.Err())
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	if err := writePhases(ctx, tx, rest); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReplacePhases stores a new order and new dates for every phase of a
// project in one transaction. The collection must be valid for the project
// boundary and hold exactly the stored phase IDs.
func (s *SQLite) ReplacePhases(ctx context.Context, projectID string, phases []phase.Phase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	project, err := getProject(ctx, tx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return err
	}

	stored, err := listPhases(ctx, tx, projectID)
	if err != nil {
		return err
	}
	if !phase.SameIdentitySet(stored, phases) {
		return phase.ErrIdentityMismatch
	}

	if res := timeline.Validate(phases, project.Boundary()); !res.Valid {
		return res.Err()
	}

	if err := writePhases(ctx, tx, phases); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// writePhases stores position, dates, name and budget for each phase. The
// slice order is the new position order.
func writePhases(ctx context.Context, tx *sql.Tx, phases []phase.Phase) error {
	stmt, err := tx.PrepareContext(ctx, `
		UPDATE phases
		SET position = ?, start_date = ?, end_date = ?, name = ?, budget = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing phase update: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range phases {
		if _, err := stmt.ExecContext(ctx,
			i,
			dateutil.Format(p.Start),
			dateutil.Format(p.End),
			p.Name,
			p.Budget,
			p.ID,
		); err != nil {
			return fmt.Errorf("updating phase %s: %w", p.ID, err)
		}
	}
	return nil
}

func listPhases(ctx context.Context, q queryer, projectID string) ([]phase.Phase, error) {
	query := `
		SELECT id, project_id, name, start_date, end_date, budget, created_at
		FROM phases
		WHERE project_id = ?
		ORDER BY position
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying phases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	phases := []phase.Phase{}
	for rows.Next() {
		var (
			p         phase.Phase
			startDate string
			endDate   string
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &startDate, &endDate, &p.Budget, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		if p.Start, err = parseDate(startDate); err != nil {
			return nil, fmt.Errorf("parsing start date: %w", err)
		}
		if p.End, err = parseDate(endDate); err != nil {
			return nil, fmt.Errorf("parsing end date: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		phases = append(phases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}

	return phases, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*phase.Project, error) {
	var (
		p         phase.Project
		startDate string
		endDate   string
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &startDate, &endDate, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if p.Start, err = parseDate(startDate); err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	if p.End, err = parseDate(endDate); err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &p, nil
}

// parseDate parses a stored date. A missing date is kept as the zero value
// so Validate can report it.
func parseDate(s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	return civil.ParseDate(s)
}
