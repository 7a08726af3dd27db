package timeline

import (
	"fmt"

	"github.com/javiermolinar/tramo/internal/dateutil"
	"github.com/javiermolinar/tramo/internal/phase"
)

// Recalculate lays phases end to end starting at b.Start. Every phase keeps
// its duration except the last, whose end is pinned to b.End so any slack or
// shortfall lands there.
//
// A phase without a usable duration is laid out as a single day; Validate
// still judges the final shape.
func Recalculate(phases []phase.Phase, b phase.Boundary) []phase.Phase {
	out := make([]phase.Phase, len(phases))
	if len(phases) == 0 {
		return out
	}

	durations := make([]int, len(phases))
	for i := range phases {
		durations[i] = max(phases[i].Duration(), 1)
	}
	layout(out, phases, durations, b)
	return out
}

// layout fills out with phases laid end to end from b.Start using the given
// durations, pinning the last end to b.End.
func layout(out, phases []phase.Phase, durations []int, b phase.Boundary) {
	start := b.Start
	for i := range phases {
		out[i] = phases[i]
		out[i].Start = start
		out[i].End = dateutil.EndFor(start, durations[i])
		start = dateutil.NextDay(out[i].End)
	}
	out[len(out)-1].End = b.End
}

// Absorbed returns how many days the last phase gains (positive) or loses
// (negative) when phases are recalculated against b.
func Absorbed(phases []phase.Phase, b phase.Boundary) int {
	total := 0
	for i := range phases {
		total += max(phases[i].Duration(), 1)
	}
	return b.Days() - total
}

// AbsorbedNote describes the days the last phase gains or loses when phases
// are recalculated against b, or returns "" when nothing changes.
func AbsorbedNote(phases []phase.Phase, b phase.Boundary) string {
	if len(phases) == 0 {
		return ""
	}
	n := Absorbed(phases, b)
	last := phases[len(phases)-1].Name
	switch {
	case n > 0:
		return fmt.Sprintf("%s gains %s", last, days(n))
	case n < 0:
		return fmt.Sprintf("%s loses %s", last, days(-n))
	}
	return ""
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
