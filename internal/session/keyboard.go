package session

// EnterKeyboard starts a keyboard session for the focused phase. The
// candidate starts at the phase's own position.
func (e *Engine) EnterKeyboard(id string) error {
	s, err := e.begin(ModeKeyboard, id)
	if err != nil {
		return err
	}
	e.setCandidate(s.origin)
	e.announce(msgKeyboardStart(s.name, s.origin, len(e.phases)))
	return nil
}

// Step moves the candidate by delta positions, clamped to the collection.
// Negative values move towards the start.
func (e *Engine) Step(delta int) error {
	s, err := e.require(ModeKeyboard)
	if err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	n := len(e.phases)
	target := min(max(s.candidate+delta, 0), n-1)
	if !e.setCandidate(target) {
		e.announce(msgEdge(s.name, target, n))
		return nil
	}
	if target == s.origin {
		e.announce(msgNoTarget(s.name, s.origin, n))
		return nil
	}
	e.announce(msgOver(s.name, target, n, s.validation.Reason))
	return nil
}

// Confirm ends a keyboard session, committing the current candidate.
// Confirming at the original position ends the session unchanged.
func (e *Engine) Confirm() (Result, error) {
	return e.Drop()
}

// Abort ends the session and keeps the accepted order.
func (e *Engine) Abort() error {
	return e.Cancel()
}
