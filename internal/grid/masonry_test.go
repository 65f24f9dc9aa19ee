package grid

import (
	"math"
	"testing"

	"github.com/gridpick/gridpick/internal/dataset"
)

func sized(w, h float64) dataset.Item {
	return dataset.Item{Payload: "tile", Width: w, Height: h}
}

func TestPackerShortestColumnPlacement(t *testing.T) {
	p := NewPacker(2, 0)
	p.SetWidth(200)
	p.AddItems([]dataset.Item{
		sized(100, 50),
		sized(100, 200),
		sized(100, 50),
	})

	boxes := p.Boxes()
	if len(boxes) != 3 {
		t.Fatalf("expected 3 boxes, got %d", len(boxes))
	}
	// First tie goes to column 0.
	if boxes[0].Col != 0 || boxes[0].Y != 0 || boxes[0].H != 50 {
		t.Fatalf("unexpected first placement %+v", boxes[0])
	}
	// Column 1 is empty (height 0) while column 0 holds 50.
	if boxes[1].Col != 1 || boxes[1].Y != 0 || boxes[1].H != 200 {
		t.Fatalf("unexpected second placement %+v", boxes[1])
	}
	// Column 0 (50) is shorter than column 1 (200).
	if boxes[2].Col != 0 || boxes[2].Y != 50 || boxes[2].H != 50 {
		t.Fatalf("unexpected third placement %+v", boxes[2])
	}
	if p.Height() != 200 {
		t.Fatalf("expected container height 200, got %g", p.Height())
	}
}

func TestPackerHeightFormula(t *testing.T) {
	p := NewPacker(1, 0)
	p.SetWidth(100)
	p.AddItems([]dataset.Item{sized(200, 100), sized(150, 100)})

	boxes := p.Boxes()
	if boxes[0].H != 50 {
		t.Fatalf("expected round(100*100/200)=50, got %g", boxes[0].H)
	}
	if boxes[1].H != 67 {
		t.Fatalf("expected round(100*100/150)=67, got %g", boxes[1].H)
	}
}

func TestPackerSkipsDegenerateItems(t *testing.T) {
	p := NewPacker(2, 0)
	p.SetWidth(200)
	p.AddItems([]dataset.Item{
		sized(0, 100),   // infinite height
		sized(100, 0),   // zero height
		sized(-50, 100), // negative
		sized(100, 100),
	})

	if len(p.Boxes()) != 1 {
		t.Fatalf("expected only the valid item placed, got %d boxes", len(p.Boxes()))
	}
	if p.Height() != 100 {
		t.Fatalf("expected skipped items not to affect heights, got %g", p.Height())
	}
}

func TestPackerSpacingAccumulates(t *testing.T) {
	p := NewPacker(1, 10)
	p.SetWidth(100)
	p.AddItems([]dataset.Item{sized(100, 50), sized(100, 50)})

	boxes := p.Boxes()
	if boxes[0].Y != 0 {
		t.Fatalf("expected first tile at 0, got %g", boxes[0].Y)
	}
	if boxes[1].Y != 60 {
		t.Fatalf("expected second tile below spacing at 60, got %g", boxes[1].Y)
	}
}

func TestPackerColumnXAccountsForSpacing(t *testing.T) {
	p := NewPacker(2, 10)
	p.SetWidth(210)
	p.AddItems([]dataset.Item{sized(100, 100), sized(100, 100)})

	boxes := p.Boxes()
	if boxes[0].X != 0 {
		t.Fatalf("expected column 0 at x=0, got %g", boxes[0].X)
	}
	if boxes[1].X != 110 {
		t.Fatalf("expected column 1 at x=110, got %g", boxes[1].X)
	}
	if p.ColumnWidth() != 100 {
		t.Fatalf("expected derived column width 100, got %g", p.ColumnWidth())
	}
}

func TestPackerWidthChangeRepacksFromScratch(t *testing.T) {
	p := NewPacker(2, 0)
	p.SetWidth(200)
	p.AddItems([]dataset.Item{sized(100, 50), sized(100, 50), sized(100, 50)})

	p.SetWidth(400)
	boxes := p.Boxes()
	if len(boxes) != 3 {
		t.Fatalf("expected retained items repacked, got %d boxes", len(boxes))
	}
	for i, b := range boxes {
		if b.W != 200 {
			t.Fatalf("expected box %d repacked at new column width 200, got %g", i, b.W)
		}
	}
	// Same width again is a no-op, not a repack.
	p.SetWidth(400)
	if len(p.Boxes()) != 3 {
		t.Fatal("expected no-op for unchanged width")
	}
}

func TestPackerBalancesSimilarAspectRatios(t *testing.T) {
	p := NewPacker(3, 0)
	p.SetWidth(300)
	items := make([]dataset.Item, 20)
	for i := range items {
		items[i] = sized(100, 80)
	}
	p.AddItems(items)

	min, max := math.Inf(1), 0.0
	for _, b := range p.Boxes() {
		top := b.Y + b.H
		if top > max {
			max = top
		}
	}
	heights := make([]float64, 3)
	for _, b := range p.Boxes() {
		if top := b.Y + b.H; top > heights[b.Col] {
			heights[b.Col] = top
		}
	}
	for _, h := range heights {
		if h < min {
			min = h
		}
	}
	if max-min > 80 {
		t.Fatalf("expected column heights within one item height, spread %g", max-min)
	}
}

func TestPackerDefersOnUnusableWidth(t *testing.T) {
	p := NewPacker(2, 0)
	p.AddItems([]dataset.Item{sized(100, 100)})

	tok, pending := p.PendingRetry()
	if !pending {
		t.Fatal("expected deferred attempt for zero width")
	}
	if len(p.Boxes()) != 0 {
		t.Fatal("expected nothing placed before a usable width")
	}

	// Another defer while one is outstanding keeps the same token.
	p.SetWidth(10)
	tok2, pending := p.PendingRetry()
	if !pending || tok2 != tok {
		t.Fatalf("expected single outstanding deferred attempt, got %v/%v", tok, tok2)
	}

	p.SetWidth(200)
	if _, pending := p.PendingRetry(); pending {
		t.Fatal("expected valid width to satisfy the deferred attempt")
	}
	if len(p.Boxes()) != 1 {
		t.Fatalf("expected retained item packed, got %d boxes", len(p.Boxes()))
	}
	// The old fallback timer fires afterwards and must be a no-op.
	if p.FireRetry(tok) {
		t.Fatal("expected satisfied token not to fire")
	}
}

func TestPackerFireRetryPacksWhenWidthBecameUsable(t *testing.T) {
	p := NewPacker(2, 0)
	p.AddItems([]dataset.Item{sized(100, 100)})
	tok, pending := p.PendingRetry()
	if !pending {
		t.Fatal("expected deferred attempt")
	}

	// Width became usable without a change notification reaching the packer
	// (SetWidth with the same stored value is a no-op); simulate the plain
	// fallback path first: still unusable.
	if p.FireRetry(tok) {
		t.Fatal("expected retry with unusable width to fail")
	}

	p.AddItems(nil) // still nothing packed
	p.SetWidth(200)
	if len(p.Boxes()) != 1 {
		t.Fatalf("expected pack after width arrived, got %d boxes", len(p.Boxes()))
	}
}
