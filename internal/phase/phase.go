// Package phase defines the core domain types for tramo.
package phase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/javiermolinar/tramo/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrInvalidDays    = errors.New("days must be at least 1")
	ErrNegativeBudget = errors.New("budget cannot be negative")
)

// Domain errors.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrPhaseNotFound    = errors.New("phase not found")
	ErrIdentityMismatch = errors.New("phase set does not match stored phases")
	ErrDuplicateProject = errors.New("project name already exists")
)

// Phase is one dated segment of a project.
// Start and End are inclusive calendar dates.
type Phase struct {
	ID        string
	ProjectID string
	Name      string
	Start     civil.Date
	End       civil.Date
	Budget    int64 // minor currency units, owned by the caller
	CreatedAt time.Time
}

// New creates a phase with validation.
// start must be in YYYY-MM-DD format and days at least 1.
func New(projectID, name, start string, days int) (*Phase, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	startDate, err := dateutil.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}

	return &Phase{
		ProjectID: projectID,
		Name:      name,
		Start:     startDate,
		End:       dateutil.EndFor(startDate, days),
		CreatedAt: time.Now(),
	}, nil
}

// HasDates returns true if both start and end are set.
func (p Phase) HasDates() bool {
	return !dateutil.IsZero(p.Start) && !dateutil.IsZero(p.End)
}

// Duration returns the inclusive number of days the phase covers.
// Returns 0 when a date is missing or the end is before the start.
func (p Phase) Duration() int {
	if !p.HasDates() {
		return 0
	}
	d := dateutil.DaysInclusive(p.Start, p.End)
	if d < 0 {
		return 0
	}
	return d
}

// String returns a short human description of the phase.
func (p Phase) String() string {
	return fmt.Sprintf("%s (%s..%s)", p.Name, dateutil.Format(p.Start), dateutil.Format(p.End))
}

// Boundary is the fixed range a phase collection must tile exactly.
type Boundary struct {
	Start civil.Date
	End   civil.Date
}

// NewBoundary parses a boundary from YYYY-MM-DD strings.
func NewBoundary(start, end string) (Boundary, error) {
	r, err := dateutil.NewDateRange(start, end)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Start: r.Start, End: r.End}, nil
}

// Days returns the inclusive span of the boundary.
func (b Boundary) Days() int {
	return dateutil.DaysInclusive(b.Start, b.End)
}

// String formats the boundary as "start..end".
func (b Boundary) String() string {
	return dateutil.Format(b.Start) + ".." + dateutil.Format(b.End)
}

// Project owns a boundary and an ordered set of phases.
type Project struct {
	ID        string
	Name      string
	Start     civil.Date
	End       civil.Date
	CreatedAt time.Time
}

// NewProject creates a project with validation.
func NewProject(name, start, end string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	b, err := NewBoundary(start, end)
	if err != nil {
		return nil, err
	}
	return &Project{
		Name:      name,
		Start:     b.Start,
		End:       b.End,
		CreatedAt: time.Now(),
	}, nil
}

// Boundary returns the project's date range.
func (p *Project) Boundary() Boundary {
	return Boundary{Start: p.Start, End: p.End}
}

// Clone returns a copy of the collection.
func Clone(phases []Phase) []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// IndexOf returns the position of the phase with the given ID, or -1.
func IndexOf(phases []Phase, id string) int {
	for i := range phases {
		if phases[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the phase identifiers in order.
func IDs(phases []Phase) []string {
	ids := make([]string, len(phases))
	for i := range phases {
		ids[i] = phases[i].ID
	}
	return ids
}

// SameIdentitySet reports whether a and b contain exactly the same IDs,
// regardless of order.
func SameIdentitySet(a, b []Phase) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, id := range IDs(a) {
		seen[id]++
	}
	for _, id := range IDs(b) {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
