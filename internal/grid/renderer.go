package grid

import (
	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/logging/events"
)

// ChunkSize is the number of items materialized per cooperative unit of work.
const ChunkSize = 36

// Direction enumerates arrow-key moves over a layout.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Cell is one rendered grid entry.
type Cell struct {
	Item     dataset.Item
	Rendered string
}

// Renderer lays a filtered item list into a fixed-column grid in chunks so
// large lists never block input handling. Before a chunk is processed, and
// again before the next chunk is scheduled, the pass re-checks its session
// and the hosting surface; failing either abandons the pass silently.
type Renderer struct {
	perRow  int
	chunk   int
	render  func(dataset.Item) string
	surface func() bool
	sched   *Scheduler

	cells   []Cell
	session *Session
}

// NewRenderer builds a renderer. render produces the cell text for an item
// (an empty result skips that item); surface reports whether the hosting
// surface still exists.
func NewRenderer(perRow int, render func(dataset.Item) string, surface func() bool, sched *Scheduler) *Renderer {
	if perRow < 1 {
		perRow = 1
	}
	return &Renderer{
		perRow:  perRow,
		chunk:   ChunkSize,
		render:  render,
		surface: surface,
		sched:   sched,
	}
}

// Begin starts a render pass for items under the given session, replacing
// whatever the previous pass produced.
func (r *Renderer) Begin(items []dataset.Item, session *Session) {
	r.cells = r.cells[:0]
	r.session = session
	events.Render.SessionStart(session.ID(), len(items))
	r.scheduleChunk(items, 0, session)
}

func (r *Renderer) scheduleChunk(items []dataset.Item, offset int, session *Session) {
	if offset >= len(items) {
		return
	}
	if !r.alive(session) {
		events.Render.Abandoned(session.ID())
		return
	}
	r.sched.Enqueue(func() {
		r.processChunk(items, offset, session)
	})
}

func (r *Renderer) processChunk(items []dataset.Item, offset int, session *Session) {
	if !r.alive(session) {
		events.Render.Abandoned(session.ID())
		return
	}
	end := offset + r.chunk
	if end > len(items) {
		end = len(items)
	}
	for _, it := range items[offset:end] {
		rendered := r.render(it)
		if rendered == "" {
			continue
		}
		r.cells = append(r.cells, Cell{Item: it, Rendered: rendered})
	}
	events.Render.Chunk(session.ID(), offset, end-offset)
	r.scheduleChunk(items, end, session)
}

func (r *Renderer) alive(session *Session) bool {
	if !session.Current() {
		return false
	}
	return r.surface == nil || r.surface()
}

// Cells returns the flat row-major list rendered so far.
func (r *Renderer) Cells() []Cell {
	return r.cells
}

// PerRow returns the configured column count.
func (r *Renderer) PerRow() int {
	return r.perRow
}

// Move resolves a directional key over the row-major cell list. The returned
// propagate flag is true only for Up from the first row, which escapes the
// grid (to hand focus to the search field); every other boundary move is
// consumed in place.
func (r *Renderer) Move(from int, dir Direction) (next int, propagate bool) {
	n := len(r.cells)
	if n == 0 || from < 0 || from >= n {
		return from, false
	}
	switch dir {
	case DirLeft:
		if from > 0 {
			return from - 1, false
		}
	case DirRight:
		if from < n-1 {
			return from + 1, false
		}
	case DirUp:
		if from-r.perRow >= 0 {
			return from - r.perRow, false
		}
		return from, true
	case DirDown:
		if from+r.perRow < n {
			return from + r.perRow, false
		}
	}
	return from, false
}
