package db

import "fmt"

// migrate runs database migrations.
// Dates are stored as YYYY-MM-DD text so they round-trip as calendar dates.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			created_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS phases (
			id          TEXT PRIMARY KEY,
			project_id  TEXT NOT NULL REFERENCES projects(id),
			name        TEXT NOT NULL,
			position    INTEGER NOT NULL,
			start_date  TEXT NOT NULL DEFAULT '',
			end_date    TEXT NOT NULL DEFAULT '',
			budget      INTEGER NOT NULL DEFAULT 0 CHECK(budget >= 0),
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
