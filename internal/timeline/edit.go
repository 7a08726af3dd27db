package timeline

import (
	"fmt"

	"github.com/javiermolinar/tramo/internal/phase"
)

// Append adds p after the last phase, carving days out of the current last
// phase so the collection keeps covering b. An empty collection gives p the
// whole boundary and days is ignored.
func Append(phases []phase.Phase, p phase.Phase, days int, b phase.Boundary) ([]phase.Phase, Result) {
	if len(phases) == 0 {
		p.Start, p.End = b.Start, b.End
		out := []phase.Phase{p}
		return out, Validate(out, b)
	}

	n := len(phases)
	if days < 1 {
		return phase.Clone(phases), Result{
			Code:   CodeEndBeforeStart,
			Reason: fmt.Sprintf("%s needs at least one day", p.Name),
			Index:  n,
		}
	}

	durations := make([]int, n+1)
	for i := range phases {
		durations[i] = max(phases[i].Duration(), 1)
	}
	durations[n-1] -= days
	durations[n] = days
	if durations[n-1] < 1 {
		return phase.Clone(phases), Result{
			Code:   CodeEndBeforeStart,
			Reason: fmt.Sprintf("%s has only %d days, cannot give %d to %s", phases[n-1].Name, durations[n-1]+days, days, p.Name),
			Index:  n - 1,
		}
	}

	seq := append(phase.Clone(phases), p)
	out := make([]phase.Phase, n+1)
	layout(out, seq, durations, b)
	return out, Validate(out, b)
}

// Remove drops the phase with the given ID and recalculates the rest against
// b, so the new last phase absorbs the freed days. Removing the only phase
// yields an empty collection, reported with CodeEmpty.
func Remove(phases []phase.Phase, id string, b phase.Boundary) ([]phase.Phase, Result, bool) {
	idx := phase.IndexOf(phases, id)
	if idx < 0 {
		return phase.Clone(phases), Validate(phases, b), false
	}
	rest := make([]phase.Phase, 0, len(phases)-1)
	rest = append(rest, phases[:idx]...)
	rest = append(rest, phases[idx+1:]...)
	out := Recalculate(rest, b)
	return out, Validate(out, b), true
}
