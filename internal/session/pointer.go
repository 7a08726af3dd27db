package session

import (
	"github.com/javiermolinar/tramo/internal/timeline"
)

// Row is the vertical extent of one rendered phase, in host coordinates.
type Row struct {
	Top    int
	Height int
}

// NearestGap maps a pointer y coordinate to the closest insertion gap
// (0..len(rows)) for the phase at origin. Rows taller than one unit are split
// at their midpoint; a single-unit row takes the place of the row under the
// pointer. Returns -1 when there are no rows.
func NearestGap(rows []Row, y, origin int) int {
	n := len(rows)
	if n == 0 {
		return -1
	}
	if y < rows[0].Top {
		return 0
	}
	last := rows[n-1]
	if y >= last.Top+max(last.Height, 1) {
		return n
	}

	for i, r := range rows {
		h := max(r.Height, 1)
		if y >= r.Top+h {
			continue
		}
		if y < r.Top {
			// Between rows: the gap before this one.
			return i
		}
		if h == 1 {
			switch {
			case i < origin:
				return i
			case i > origin:
				return i + 1
			default:
				return origin
			}
		}
		if 2*(y-r.Top) < h {
			return i
		}
		return i + 1
	}
	return n
}

// PickUp starts a pointer session for the phase with the given ID.
func (e *Engine) PickUp(id string) error {
	s, err := e.begin(ModePointer, id)
	if err != nil {
		return err
	}
	e.announce(msgPickedUp(s.name, s.origin, len(e.phases)))
	return nil
}

// Drag updates the candidate from an insertion gap (0..len). Gaps that
// would leave the phase where it is clear the candidate.
func (e *Engine) Drag(gap int) error {
	s, err := e.require(ModePointer)
	if err != nil {
		return err
	}

	n := len(e.phases)
	index, ok := timeline.GapToIndex(s.origin, gap, n)
	if !ok {
		if e.clearCandidate() {
			e.announce(msgNoTarget(s.name, s.origin, n))
		}
		return nil
	}
	if e.setCandidate(index) {
		e.announce(msgOver(s.name, index, n, s.validation.Reason))
	}
	return nil
}

// DragTo updates the candidate from a pointer position over rendered rows.
func (e *Engine) DragTo(rows []Row, y int) error {
	s, err := e.require(ModePointer)
	if err != nil {
		return err
	}
	gap := NearestGap(rows, y, s.origin)
	if gap < 0 {
		return nil
	}
	return e.Drag(gap)
}

// Drop ends the session. With a current candidate the preview is validated
// and committed or rejected; without one the session is cancelled.
func (e *Engine) Drop() (Result, error) {
	if e.session == nil {
		return Result{}, ErrNoSession
	}
	return e.commit(), nil
}

// Cancel ends the session and keeps the accepted order.
func (e *Engine) Cancel() error {
	if e.session == nil {
		return ErrNoSession
	}
	e.discard()
	return nil
}

// require returns the active session if it matches mode.
func (e *Engine) require(mode Mode) (*active, error) {
	if e.session == nil || e.state != StateActive {
		return nil, ErrNoSession
	}
	if e.session.mode != mode {
		return nil, ErrWrongMode
	}
	return e.session, nil
}
