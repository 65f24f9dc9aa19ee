package grid

import "testing"

// twoColumnIndex models:
//
//	col0 (x=0..100)   col1 (x=100..200)
//	A y=0   h=50      B y=0  h=200
//	C y=50  h=50
func twoColumnIndex() *Index {
	return NewIndex([]Box{
		{X: 0, Y: 0, W: 100, H: 50},    // 0: A
		{X: 100, Y: 0, W: 100, H: 200}, // 1: B
		{X: 0, Y: 50, W: 100, H: 50},   // 2: C
	})
}

func TestIndexEdgeFlagsConsumeBoundaryMoves(t *testing.T) {
	ix := twoColumnIndex()

	if next, propagate := ix.Move(0, DirLeft); next != 0 || propagate {
		t.Fatalf("expected Left at left edge consumed, got %d/%v", next, propagate)
	}
	if next, propagate := ix.Move(1, DirRight); next != 1 || propagate {
		t.Fatalf("expected Right at right edge consumed, got %d/%v", next, propagate)
	}
	if next, propagate := ix.Move(1, DirDown); next != 1 || propagate {
		t.Fatalf("expected Down at bottom edge consumed, got %d/%v", next, propagate)
	}
}

func TestIndexUpAtTopPropagates(t *testing.T) {
	ix := twoColumnIndex()
	for _, from := range []int{0, 1} {
		next, propagate := ix.Move(from, DirUp)
		if next != from || !propagate {
			t.Fatalf("expected Up from top box %d to propagate, got %d/%v", from, next, propagate)
		}
	}
}

func TestIndexHorizontalPrefersVerticalOverlap(t *testing.T) {
	ix := twoColumnIndex()

	// A → Right: only B lies strictly right.
	if next, _ := ix.Move(0, DirRight); next != 1 {
		t.Fatalf("expected Right from A to reach B, got %d", next)
	}
	// B → Left: A and C tie on horizontal distance; A overlaps B's top span.
	if next, _ := ix.Move(1, DirLeft); next != 0 {
		t.Fatalf("expected Left from B to pick the overlapping A, got %d", next)
	}
}

func TestIndexHorizontalFallsBackToVerticalCenter(t *testing.T) {
	// Right column box sits entirely below the left box: no vertical overlap.
	ix := NewIndex([]Box{
		{X: 0, Y: 0, W: 100, H: 40},
		{X: 100, Y: 100, W: 100, H: 40},
		{X: 100, Y: 300, W: 100, H: 40},
	})
	// From box 0, both right-column boxes are candidates; with zero overlap
	// the closer vertical center (box 1) wins.
	if next, _ := ix.Move(0, DirRight); next != 1 {
		t.Fatalf("expected fallback to closest vertical center, got %d", next)
	}
}

func TestIndexVerticalStaysInColumn(t *testing.T) {
	ix := twoColumnIndex()

	// A → Down: C (same column, dy=50) beats B (dx=100 weighted by 5).
	if next, _ := ix.Move(0, DirDown); next != 2 {
		t.Fatalf("expected Down from A to stay in column, got %d", next)
	}
	// C → Up: A is the only box strictly above.
	if next, _ := ix.Move(2, DirUp); next != 0 {
		t.Fatalf("expected Up from C to reach A, got %d", next)
	}
	// C → Down: nothing below in column 0; crosses to B.
	if next, _ := ix.Move(2, DirDown); next != 1 {
		t.Fatalf("expected Down from C to cross columns, got %d", next)
	}
}

func TestIndexWidensNearestColumnWithinSlack(t *testing.T) {
	// Column 1 is slightly misaligned: its boxes start at x=100 and x=115.
	// Both are within columnSlack of the nearest horizontal distance, so the
	// overlap rule picks between them rather than distance alone.
	ix := NewIndex([]Box{
		{X: 0, Y: 0, W: 100, H: 100},   // 0: source
		{X: 115, Y: 0, W: 100, H: 100}, // 1: overlaps source
		{X: 100, Y: 200, W: 100, H: 50}, // 2: nearer but no overlap
	})
	if next, _ := ix.Move(0, DirRight); next != 1 {
		t.Fatalf("expected widened candidate with overlap to win, got %d", next)
	}
}

func TestIndexEmptyAndOutOfRange(t *testing.T) {
	ix := NewIndex(nil)
	if next, propagate := ix.Move(0, DirLeft); next != 0 || propagate {
		t.Fatalf("expected empty index to consume, got %d/%v", next, propagate)
	}
	ix = twoColumnIndex()
	if next, _ := ix.Move(99, DirDown); next != 99 {
		t.Fatalf("expected out-of-range index returned unchanged, got %d", next)
	}
}
