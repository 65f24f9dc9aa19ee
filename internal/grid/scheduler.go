package grid

// Scheduler is a cooperative task queue. Work is enqueued as unit-of-work
// closures and executed one at a time when the host drives Tick between UI
// events; nothing runs concurrently. Cancellation is cooperative too: work
// that may outlive its render pass captures a Session and checks it when run.
type Scheduler struct {
	queue []func()
}

// Enqueue appends a unit of work.
func (s *Scheduler) Enqueue(fn func()) {
	if fn == nil {
		return
	}
	s.queue = append(s.queue, fn)
}

// Tick runs the next unit of work and reports whether more remain. The unit
// may enqueue follow-up work.
func (s *Scheduler) Tick() bool {
	if len(s.queue) == 0 {
		return false
	}
	fn := s.queue[0]
	s.queue = s.queue[1:]
	fn()
	return len(s.queue) > 0
}

// Pending returns the number of queued units.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Cancel drops all queued work without running it.
func (s *Scheduler) Cancel() {
	s.queue = nil
}
