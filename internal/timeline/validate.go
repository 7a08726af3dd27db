package timeline

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
)

// ErrInvalid is wrapped by Result.Err for collections that fail validation.
var ErrInvalid = errors.New("invalid phase collection")

// Code classifies a validation failure.
type Code string

const (
	CodeOK             Code = ""
	CodeEmpty          Code = "empty"
	CodeMissingDate    Code = "missing_date"
	CodeEndBeforeStart Code = "end_before_start"
	CodeStartMismatch  Code = "start_mismatch"
	CodeEndMismatch    Code = "end_mismatch"
	CodeGap            Code = "gap"
	CodeOverlap        Code = "overlap"
)

// Result is the verdict of Validate.
type Result struct {
	Valid  bool
	Code   Code
	Reason string // Human-readable, empty when valid
	Index  int    // Offending phase, -1 when the failure is not phase-specific
}

// Err returns nil for a valid result, otherwise an error wrapping ErrInvalid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, r.Reason)
}

func ok() Result {
	return Result{Valid: true, Index: -1}
}

func fail(code Code, index int, format string, args ...any) Result {
	return Result{
		Code:   code,
		Index:  index,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Validate checks that phases tile b exactly: non-empty, every phase dated
// with end on or after start, first start on b.Start, last end on b.End and
// each phase starting the day after the previous one ends.
func Validate(phases []phase.Phase, b phase.Boundary) Result {
	if len(phases) == 0 {
		return fail(CodeEmpty, -1, "no phases to schedule")
	}

	for i, p := range phases {
		if !p.HasDates() {
			return fail(CodeMissingDate, i, "phase %q is missing a start or end date", p.Name)
		}
		if p.End.Before(p.Start) {
			return fail(CodeEndBeforeStart, i, "phase %q ends (%s) before it starts (%s)",
				p.Name, p.End, p.Start)
		}
	}

	first, last := phases[0], phases[len(phases)-1]
	if first.Start != b.Start {
		return fail(CodeStartMismatch, 0, "first phase %q starts %s, project starts %s",
			first.Name, first.Start, dateutil.Format(b.Start))
	}
	if last.End != b.End {
		return fail(CodeEndMismatch, len(phases)-1, "last phase %q ends %s, project ends %s",
			last.Name, last.End, dateutil.Format(b.End))
	}

	for i := 1; i < len(phases); i++ {
		prev, cur := phases[i-1], phases[i]
		want := dateutil.NextDay(prev.End)
		switch {
		case cur.Start.After(want):
			return fail(CodeGap, i, "gap between %q (ends %s) and %q (starts %s)",
				prev.Name, prev.End, cur.Name, cur.Start)
		case cur.Start.Before(want):
			return fail(CodeOverlap, i, "%q (starts %s) overlaps %q (ends %s)",
				cur.Name, cur.Start, prev.Name, prev.End)
		}
	}

	return ok()
}
