package grid

// Session is an opaque generation token minted per render pass. A pass checks
// Current before doing or scheduling any work; once a newer session exists, or
// the tracker has been cancelled, every in-flight piece of the old pass
// becomes a no-op.
type Session struct {
	id      uint64
	tracker *Tracker
}

// ID returns the session's generation number.
func (s *Session) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Current reports whether this session is still the live one.
func (s *Session) Current() bool {
	if s == nil || s.tracker == nil {
		return false
	}
	return !s.tracker.cancelled && s.tracker.current == s.id
}

// Tracker mints sessions and invalidates superseded ones. Exactly one session
// is current at any time.
type Tracker struct {
	current   uint64
	cancelled bool
}

// Next supersedes the current session and returns a fresh one.
func (t *Tracker) Next() *Session {
	t.current++
	t.cancelled = false
	return &Session{id: t.current, tracker: t}
}

// Cancel invalidates the current session without minting a replacement. Used
// on teardown so every outstanding scheduled callback becomes a no-op.
func (t *Tracker) Cancel() {
	t.cancelled = true
}
