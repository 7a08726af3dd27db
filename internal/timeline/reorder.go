// Package timeline reorders phase collections and recomputes their dates so
// they keep tiling a project's boundary.
//
// Every function here is pure: inputs are never mutated and results are new
// slices.
package timeline

import (
	"github.com/javiermolinar/tramo/internal/phase"
)

// Reorder moves the element at from to position to, keeping the relative
// order of every other element. If either index is outside [0, len-1] the
// input is returned as is.
func Reorder[T any](seq []T, from, to int) []T {
	n := len(seq)
	if from < 0 || from >= n || to < 0 || to >= n {
		return seq
	}

	out := make([]T, 0, n)
	moved := seq[from]
	for i := range seq {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, moved)
		}
		out = append(out, seq[i])
	}
	if len(out) < n {
		out = append(out, moved)
	}
	return out
}

// Move reorders phases, recalculates their dates against b and validates the
// result. The returned collection is only safe to commit when the result is
// valid.
func Move(phases []phase.Phase, from, to int, b phase.Boundary) ([]phase.Phase, Result) {
	recalculated := Recalculate(Reorder(phases, from, to), b)
	return recalculated, Validate(recalculated, b)
}

// GapToIndex converts an insertion gap (0..len, the slot before element gap)
// into the target index for Reorder. Gaps from and from+1 leave the element
// where it is and report false.
func GapToIndex(from, gap, n int) (int, bool) {
	if from < 0 || from >= n || gap < 0 || gap > n {
		return 0, false
	}
	if gap == from || gap == from+1 {
		return 0, false
	}
	if gap > from {
		return gap - 1, true
	}
	return gap, true
}
