package tui

import (
	"errors"

	"github.com/javiermolinar/tramo/internal/phase"
)

// Pending change errors.
var ErrNothingToUndo = errors.New("nothing to undo")

const defaultMaxHistory = 50

// historyEntry is one undoable reorder.
type historyEntry struct {
	Description string        // e.g. "Move: Build"
	Phases      []phase.Phase // The working collection before the change
}

// Pending tracks committed reorders that have not been saved yet.
// Saved mirrors the store; Working is what the table shows.
type Pending struct {
	saved   []phase.Phase
	working []phase.Phase

	history    []historyEntry
	maxHistory int
}

// NewPending creates an empty pending change set.
func NewPending() *Pending {
	return &Pending{maxHistory: defaultMaxHistory}
}

// Reset replaces both saved and working collections, dropping history.
// Used after loading from or saving to the store.
func (p *Pending) Reset(phases []phase.Phase) {
	p.saved = phase.Clone(phases)
	p.working = phase.Clone(phases)
	p.history = nil
}

// Working returns a copy of the collection with unsaved changes applied.
func (p *Pending) Working() []phase.Phase {
	return phase.Clone(p.working)
}

// Apply records a new working collection, keeping the previous one for undo.
func (p *Pending) Apply(description string, phases []phase.Phase) {
	if len(p.history) >= p.maxHistory {
		p.history = p.history[1:]
	}
	p.history = append(p.history, historyEntry{
		Description: description,
		Phases:      p.working,
	})
	p.working = phase.Clone(phases)
}

// Undo reverts the last change and returns its description.
func (p *Pending) Undo() (string, error) {
	if len(p.history) == 0 {
		return "", ErrNothingToUndo
	}
	entry := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.working = entry.Phases
	return entry.Description, nil
}

// Discard drops every unsaved change.
func (p *Pending) Discard() {
	p.working = phase.Clone(p.saved)
	p.history = nil
}

// Count returns the number of undoable changes.
func (p *Pending) Count() int {
	return len(p.history)
}

// HasChanges reports whether the working order differs from the saved one.
func (p *Pending) HasChanges() bool {
	if len(p.saved) != len(p.working) {
		return true
	}
	for i := range p.saved {
		if p.saved[i].ID != p.working[i].ID ||
			p.saved[i].Start != p.working[i].Start ||
			p.saved[i].End != p.working[i].End {
			return true
		}
	}
	return false
}
