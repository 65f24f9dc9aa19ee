package grid

import (
	"fmt"
	"testing"

	"github.com/gridpick/gridpick/internal/dataset"
)

func testItems(n int) []dataset.Item {
	items := make([]dataset.Item, n)
	for i := range items {
		items[i] = dataset.Item{Payload: fmt.Sprintf("item-%d", i)}
	}
	return items
}

func renderPayload(it dataset.Item) string {
	return it.Payload
}

func TestRendererChunksThroughScheduler(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(8, renderPayload, nil, &sched)

	r.Begin(testItems(80), tracker.Next())

	ticks := 0
	for sched.Tick() {
		ticks++
	}
	ticks++ // the final Tick ran a unit before reporting the queue empty
	if ticks != 3 {
		t.Fatalf("expected ceil(80/36)=3 chunks, got %d", ticks)
	}
	if len(r.Cells()) != 80 {
		t.Fatalf("expected 80 cells, got %d", len(r.Cells()))
	}
	if r.Cells()[0].Rendered != "item-0" || r.Cells()[79].Rendered != "item-79" {
		t.Fatal("expected cells in item order")
	}
}

func TestRendererAbandonsSupersededSession(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(8, renderPayload, nil, &sched)

	r.Begin(testItems(80), tracker.Next())
	sched.Tick() // first chunk of the old pass lands

	r.Begin(testItems(10), tracker.Next())
	for sched.Tick() {
	}

	if len(r.Cells()) != 10 {
		t.Fatalf("expected only the new session's 10 cells, got %d", len(r.Cells()))
	}
	for i, cell := range r.Cells() {
		if cell.Rendered != fmt.Sprintf("item-%d", i) {
			t.Fatalf("unexpected cell %d: %q", i, cell.Rendered)
		}
	}
}

func TestRendererStopsWhenSurfaceGone(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	alive := true
	r := NewRenderer(8, renderPayload, func() bool { return alive }, &sched)

	r.Begin(testItems(80), tracker.Next())
	sched.Tick()
	alive = false
	for sched.Tick() {
	}

	if len(r.Cells()) != 36 {
		t.Fatalf("expected render to stop at the first chunk, got %d cells", len(r.Cells()))
	}
}

func TestRendererSkipsEmptyRenderResults(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(8, func(it dataset.Item) string {
		if it.Payload == "item-1" {
			return ""
		}
		return it.Payload
	}, nil, &sched)

	r.Begin(testItems(3), tracker.Next())
	for sched.Tick() {
	}

	if len(r.Cells()) != 2 {
		t.Fatalf("expected the empty result skipped, got %d cells", len(r.Cells()))
	}
	if r.Cells()[1].Rendered != "item-2" {
		t.Fatalf("unexpected second cell %q", r.Cells()[1].Rendered)
	}
}

func drainRender(t *testing.T, r *Renderer, sched *Scheduler, items []dataset.Item, session *Session) {
	t.Helper()
	r.Begin(items, session)
	for sched.Tick() {
	}
}

func TestRendererRowMajorNavigation(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(3, renderPayload, nil, &sched)
	drainRender(t, r, &sched, testItems(8), tracker.Next())
	// Layout:
	//   0 1 2
	//   3 4 5
	//   6 7

	if next, _ := r.Move(4, DirLeft); next != 3 {
		t.Fatalf("expected Left to 3, got %d", next)
	}
	if next, _ := r.Move(4, DirRight); next != 5 {
		t.Fatalf("expected Right to 5, got %d", next)
	}
	if next, _ := r.Move(4, DirUp); next != 1 {
		t.Fatalf("expected Up to 1, got %d", next)
	}
	if next, _ := r.Move(4, DirDown); next != 7 {
		t.Fatalf("expected Down to 7, got %d", next)
	}

	if next, propagate := r.Move(0, DirLeft); next != 0 || propagate {
		t.Fatalf("expected Left at start consumed, got %d/%v", next, propagate)
	}
	if next, propagate := r.Move(7, DirRight); next != 7 || propagate {
		t.Fatalf("expected Right at end consumed, got %d/%v", next, propagate)
	}
}

func TestRendererUpFromFirstRowPropagates(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(3, renderPayload, nil, &sched)
	drainRender(t, r, &sched, testItems(8), tracker.Next())

	next, propagate := r.Move(1, DirUp)
	if next != 1 || !propagate {
		t.Fatalf("expected Up from first row to propagate, got %d/%v", next, propagate)
	}
}

func TestRendererDownPastLastRowConsumed(t *testing.T) {
	var sched Scheduler
	var tracker Tracker
	r := NewRenderer(3, renderPayload, nil, &sched)
	drainRender(t, r, &sched, testItems(8), tracker.Next())

	next, propagate := r.Move(6, DirDown)
	if next != 6 || propagate {
		t.Fatalf("expected Down past last row consumed, got %d/%v", next, propagate)
	}
	// Item 5 has no cell directly below it either.
	if next, _ := r.Move(5, DirDown); next != 5 {
		t.Fatalf("expected Down with no cell below consumed, got %d", next)
	}
}
