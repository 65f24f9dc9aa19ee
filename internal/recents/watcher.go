package recents

import (
	"context"
	"os"
	"sync"
	"time"
)

// Event signals that the recents file changed on disk, or that the poll
// failed.
type Event struct {
	ModTime time.Time
	Err     error
}

// Watcher polls the recents file at a fixed interval and publishes an event
// whenever another process rewrites it. The picker that performed a mutation
// itself already re-rendered through the store's subscriber notification;
// the watcher exists for the cross-process case.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls the file every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current stat
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(250 * time.Millisecond)
	var lastMod time.Time
	var lastErr string

	emit := func() bool {
		throttle.wait()
		info, err := os.Stat(w.path)
		if err != nil {
			if os.IsNotExist(err) {
				// Not written yet; nothing to report.
				return true
			}
			if err.Error() == lastErr {
				return true
			}
			lastErr = err.Error()
			return w.send(Event{Err: err})
		}
		lastErr = ""
		mod := info.ModTime()
		if !mod.After(lastMod) {
			return true
		}
		first := lastMod.IsZero()
		lastMod = mod
		if first {
			// Baseline observation; the store already loaded this state.
			return true
		}
		return w.send(Event{ModTime: mod})
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
