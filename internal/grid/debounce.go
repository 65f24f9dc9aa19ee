package grid

import "time"

// DefaultDebounceInterval is the quiet period applied when no explicit
// interval is configured.
const DefaultDebounceInterval = 250 * time.Millisecond

// Token identifies one debounce window. The host schedules a timer for the
// token it received from Trigger; when the timer elapses it asks Fire whether
// that token is still the live one.
type Token struct {
	gen uint64
}

// ID returns the token's generation number.
func (t Token) ID() uint64 {
	return t.gen
}

// Debouncer coalesces rapid triggers into a single callback per quiet
// window. Every Trigger supersedes all earlier tokens, so at most one timer
// ever fires through: the one belonging to the final trigger of the window.
type Debouncer struct {
	interval  time.Duration
	gen       uint64
	destroyed bool
}

// NewDebouncer creates a debouncer with the given quiet period. Intervals
// <= 0 fall back to DefaultDebounceInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval}
}

// Interval returns the configured quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Trigger restarts the quiet window and returns the token for it. After
// Destroy, Trigger returns the zero token, which never fires.
func (d *Debouncer) Trigger() Token {
	if d.destroyed {
		return Token{}
	}
	d.gen++
	return Token{gen: d.gen}
}

// Fire reports whether the token's window elapsed undisturbed and the
// callback should run now. Superseded and post-Destroy tokens never fire.
func (d *Debouncer) Fire(tok Token) bool {
	if d.destroyed || tok.gen == 0 {
		return false
	}
	return tok.gen == d.gen
}

// Destroy invalidates every outstanding token. Calls after Destroy are
// no-ops.
func (d *Debouncer) Destroy() {
	d.destroyed = true
}
