// Package session drives interactive phase reordering.
//
// An Engine holds the accepted phase collection and at most one in-flight
// reorder session, started either by a pointer (PickUp/Drag/Drop) or by the
// keyboard (EnterKeyboard/Step/Confirm). Both share the same candidate,
// preview and commit path. All date work is delegated to package timeline.
//
// An Engine is not safe for concurrent use; it is meant to be owned by a
// single event loop.
package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/javiermolinar/tramo/internal/phase"
	"github.com/javiermolinar/tramo/internal/timeline"
)

// Engine errors.
var (
	ErrSessionActive = errors.New("a reorder session is already active")
	ErrNoSession     = errors.New("no reorder session is active")
	ErrTooFewPhases  = errors.New("at least two phases are needed to reorder")
	ErrPhaseNotFound = errors.New("phase not found")
	ErrWrongMode     = errors.New("event does not apply to the active session")
)

// State is the lifecycle position of the engine.
type State int

const (
	StateIdle State = iota
	StateActive
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// Mode is the input modality of the active session.
type Mode int

const (
	ModeNone Mode = iota
	ModePointer
	ModeKeyboard
)

func (m Mode) String() string {
	switch m {
	case ModePointer:
		return "pointer"
	case ModeKeyboard:
		return "keyboard"
	default:
		return "none"
	}
}

// Outcome describes how a session ended.
type Outcome int

const (
	OutcomeCommitted Outcome = iota + 1
	OutcomeRejected
	OutcomeCancelled
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Result is returned when a session ends through Drop or Confirm.
type Result struct {
	Outcome    Outcome
	Phases     []phase.Phase   // The accepted collection after the session
	Validation timeline.Result // Verdict on the preview, zero when none was checked
}

// Announcer receives one human-readable status line per transition.
type Announcer interface {
	Announce(msg string)
}

// AnnouncerFunc adapts a function to Announcer.
type AnnouncerFunc func(msg string)

// Announce calls f(msg).
func (f AnnouncerFunc) Announce(msg string) { f(msg) }

// CommitFunc receives the full reordered collection after a successful commit.
type CommitFunc func(phases []phase.Phase)

// Snapshot describes the active session for rendering.
type Snapshot struct {
	Mode         Mode
	SelectedID   string
	Origin       int             // Index of the selected phase before the session
	Candidate    int             // Target index, valid only when HasCandidate
	HasCandidate bool            // False when no drop target is current
	Preview      []phase.Phase   // Collection shown to the user
	Validation   timeline.Result // Verdict on Preview
}

// active is the state of an in-flight session.
type active struct {
	mode         Mode
	selectedID   string
	name         string
	origin       int
	candidate    int
	hasCandidate bool
	preview      []phase.Phase
	validation   timeline.Result
}

// Engine owns the accepted phase collection and the reorder session.
type Engine struct {
	logger    *zap.Logger
	announcer Announcer
	onCommit  CommitFunc

	phases   []phase.Phase
	boundary phase.Boundary

	state   State
	session *active
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAnnouncer sets the accessibility channel.
func WithAnnouncer(a Announcer) Option {
	return func(e *Engine) { e.announcer = a }
}

// WithCommit sets the callback that receives committed collections.
func WithCommit(fn CommitFunc) Option {
	return func(e *Engine) { e.onCommit = fn }
}

// New creates an idle engine with no phases.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the accepted collection and boundary.
// It is rejected while a session is active.
func (e *Engine) Load(phases []phase.Phase, b phase.Boundary) error {
	if e.state != StateIdle {
		return ErrSessionActive
	}
	e.phases = phase.Clone(phases)
	e.boundary = b
	e.logger.Debug("session load",
		zap.Int("phases", len(phases)),
		zap.String("boundary", b.String()),
	)
	return nil
}

// Phases returns a copy of the accepted collection.
func (e *Engine) Phases() []phase.Phase {
	return phase.Clone(e.phases)
}

// Boundary returns the boundary phases are tiled against.
func (e *Engine) Boundary() phase.Boundary {
	return e.boundary
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// IsActive returns true while a session is in progress.
func (e *Engine) IsActive() bool {
	return e.state != StateIdle
}

// Mode returns the modality of the active session, or ModeNone.
func (e *Engine) Mode() Mode {
	if e.session == nil {
		return ModeNone
	}
	return e.session.mode
}

// Snapshot returns the active session for rendering; ok is false when idle.
func (e *Engine) Snapshot() (Snapshot, bool) {
	s := e.session
	if s == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Mode:         s.mode,
		SelectedID:   s.selectedID,
		Origin:       s.origin,
		Candidate:    s.candidate,
		HasCandidate: s.hasCandidate,
		Preview:      e.Preview(),
		Validation:   s.validation,
	}, true
}

// Preview returns the collection to display: the live preview while a
// candidate is current, otherwise the accepted collection.
func (e *Engine) Preview() []phase.Phase {
	if e.session != nil && e.session.hasCandidate {
		return phase.Clone(e.session.preview)
	}
	return e.Phases()
}

// begin starts a session for the phase with the given ID.
func (e *Engine) begin(mode Mode, id string) (*active, error) {
	if e.state != StateIdle {
		return nil, ErrSessionActive
	}
	if len(e.phases) < 2 {
		return nil, ErrTooFewPhases
	}
	idx := phase.IndexOf(e.phases, id)
	if idx < 0 {
		return nil, ErrPhaseNotFound
	}

	e.session = &active{
		mode:       mode,
		selectedID: id,
		name:       e.phases[idx].Name,
		origin:     idx,
	}
	e.transition(StateActive, "begin "+mode.String())
	return e.session, nil
}

// setCandidate moves the candidate to index and rebuilds the preview.
// It reports whether anything changed.
func (e *Engine) setCandidate(index int) bool {
	s := e.session
	if s.hasCandidate && s.candidate == index {
		return false
	}
	s.candidate = index
	s.hasCandidate = true
	s.preview, s.validation = timeline.Move(e.phases, s.origin, index, e.boundary)
	e.logger.Debug("session candidate",
		zap.String("phase", s.selectedID),
		zap.Int("origin", s.origin),
		zap.Int("candidate", index),
		zap.Bool("valid", s.validation.Valid),
	)
	return true
}

// clearCandidate drops the candidate and its preview.
func (e *Engine) clearCandidate() bool {
	s := e.session
	if !s.hasCandidate {
		return false
	}
	s.hasCandidate = false
	s.candidate = 0
	s.preview = nil
	s.validation = timeline.Result{}
	return true
}

// commit validates the preview and either accepts it or discards it.
func (e *Engine) commit() Result {
	s := e.session
	if !s.hasCandidate {
		e.announce(msgCancelled(s.name, s.origin, len(e.phases)))
		e.end(OutcomeCancelled)
		return Result{Outcome: OutcomeCancelled, Phases: e.Phases()}
	}
	if s.candidate == s.origin {
		e.announce(msgUnchanged(s.name, s.origin, len(e.phases)))
		e.end(OutcomeUnchanged)
		return Result{Outcome: OutcomeUnchanged, Phases: e.Phases()}
	}

	e.transition(StateCommitting, "commit")
	verdict := timeline.Validate(s.preview, e.boundary)
	if !verdict.Valid {
		e.announce(msgRejected(s.name, verdict.Reason))
		e.end(OutcomeRejected)
		return Result{Outcome: OutcomeRejected, Phases: e.Phases(), Validation: verdict}
	}

	e.phases = phase.Clone(s.preview)
	name, target, n := s.name, s.candidate, len(e.phases)
	e.end(OutcomeCommitted)
	e.logger.Debug("session commit",
		zap.String("phase", s.selectedID),
		zap.Strings("order", phase.IDs(e.phases)),
	)
	if e.onCommit != nil {
		e.onCommit(e.Phases())
	}
	e.announce(msgCommitted(name, target, n))
	return Result{Outcome: OutcomeCommitted, Phases: e.Phases(), Validation: verdict}
}

// discard ends the session without touching the accepted collection.
func (e *Engine) discard() {
	s := e.session
	e.announce(msgCancelled(s.name, s.origin, len(e.phases)))
	e.end(OutcomeCancelled)
}

func (e *Engine) end(outcome Outcome) {
	e.session = nil
	e.transition(StateIdle, outcome.String())
}

func (e *Engine) transition(to State, reason string) {
	e.logger.Debug("session transition",
		zap.Stringer("from", e.state),
		zap.Stringer("to", to),
		zap.String("reason", reason),
	)
	e.state = to
}

func (e *Engine) announce(msg string) {
	if e.announcer != nil {
		e.announcer.Announce(msg)
	}
}
