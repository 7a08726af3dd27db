package session

import "fmt"

// Announcement texts. Positions are shown 1-based.

func msgPickedUp(name string, pos, n int) string {
	return fmt.Sprintf("Picked up %s. Phase %d of %d.", name, pos+1, n)
}

func msgKeyboardStart(name string, pos, n int) string {
	return fmt.Sprintf("Reordering %s, phase %d of %d. Use up and down to move, enter to drop, escape to cancel.",
		name, pos+1, n)
}

func msgOver(name string, pos, n int, reason string) string {
	if reason != "" {
		return fmt.Sprintf("%s would move to position %d of %d, but %s.", name, pos+1, n, reason)
	}
	return fmt.Sprintf("%s would move to position %d of %d.", name, pos+1, n)
}

func msgNoTarget(name string, pos, n int) string {
	return fmt.Sprintf("%s is over its original position %d of %d.", name, pos+1, n)
}

func msgEdge(name string, pos, n int) string {
	if pos == 0 {
		return fmt.Sprintf("%s is already first.", name)
	}
	return fmt.Sprintf("%s is already last, position %d of %d.", name, pos+1, n)
}

func msgCommitted(name string, pos, n int) string {
	return fmt.Sprintf("Moved %s to position %d of %d. Dates recalculated.", name, pos+1, n)
}

func msgUnchanged(name string, pos, n int) string {
	return fmt.Sprintf("%s kept at position %d of %d.", name, pos+1, n)
}

func msgRejected(name, reason string) string {
	return fmt.Sprintf("Could not move %s: %s. Order restored.", name, reason)
}

func msgCancelled(name string, pos, n int) string {
	return fmt.Sprintf("Reorder cancelled. %s returned to position %d of %d.", name, pos+1, n)
}
