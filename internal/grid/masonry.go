package grid

import (
	"math"
	"time"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/logging/events"
)

const (
	// minUsableWidth is the narrowest container the packer accepts; below
	// this the pack is deferred until a usable width arrives.
	minUsableWidth = 32.0

	// RetryDelay is the fallback wait before a deferred pack retries on its
	// own, in case no width-change notification ever arrives.
	RetryDelay = 500 * time.Millisecond
)

// Box is one placed masonry tile.
type Box struct {
	Item       dataset.Item
	Col        int
	X, Y, W, H float64
}

// RetryToken identifies one outstanding deferred-pack attempt.
type RetryToken struct {
	gen uint64
}

// Packer packs items with intrinsic dimensions into equal-width columns,
// always placing into the currently shortest column. Heights scale with the
// column width so every item keeps its aspect ratio.
type Packer struct {
	columns int
	spacing float64

	width    float64
	colWidth float64
	heights  []float64

	items []dataset.Item
	boxes []Box
	index *Index

	retryPending bool
	retryGen     uint64
}

// NewPacker creates a packer with the given column count and inter-item
// spacing. The packer is unusable until SetWidth provides a real width.
func NewPacker(columns int, spacing float64) *Packer {
	if columns < 1 {
		columns = 1
	}
	if spacing < 0 {
		spacing = 0
	}
	return &Packer{
		columns: columns,
		spacing: spacing,
		heights: make([]float64, columns),
	}
}

// AddItems appends items to the retained list and packs them. With an
// unusable width the items are retained and a single deferred attempt is
// scheduled instead.
func (p *Packer) AddItems(items []dataset.Item) {
	p.items = append(p.items, items...)
	if !p.usable() {
		p.deferPack()
		return
	}
	p.place(items)
	p.rebuildIndex()
}

// SetWidth updates the container width. Any real change triggers a full
// re-pack of the retained item list from scratch; a newly usable width also
// satisfies an outstanding deferred attempt.
func (p *Packer) SetWidth(width float64) {
	if width == p.width {
		return
	}
	p.width = width
	if !p.usable() {
		// Stale geometry must not drive navigation while deferred.
		for i := range p.heights {
			p.heights[i] = 0
		}
		p.boxes = p.boxes[:0]
		p.rebuildIndex()
		p.deferPack()
		return
	}
	p.retryPending = false
	p.repack()
}

// PendingRetry returns the token for the outstanding deferred attempt, if
// any. The host schedules FireRetry for it after RetryDelay.
func (p *Packer) PendingRetry() (RetryToken, bool) {
	if !p.retryPending {
		return RetryToken{}, false
	}
	return RetryToken{gen: p.retryGen}, true
}

// FireRetry runs the deferred attempt identified by tok. Stale tokens, or
// tokens already satisfied by a width change, are no-ops.
func (p *Packer) FireRetry(tok RetryToken) bool {
	if !p.retryPending || tok.gen != p.retryGen {
		return false
	}
	p.retryPending = false
	if !p.usable() {
		return false
	}
	p.repack()
	return true
}

// Height returns the container height: the tallest column's accumulated
// height.
func (p *Packer) Height() float64 {
	max := 0.0
	for _, h := range p.heights {
		if h > max {
			max = h
		}
	}
	return max
}

// Boxes returns the placed tiles in placement order.
func (p *Packer) Boxes() []Box {
	return p.boxes
}

// Columns returns the configured column count.
func (p *Packer) Columns() int {
	return p.columns
}

// ColumnWidth returns the derived per-column width.
func (p *Packer) ColumnWidth() float64 {
	return p.colWidth
}

// Move resolves a directional key over the current pack's spatial index.
func (p *Packer) Move(from int, dir Direction) (next int, propagate bool) {
	if p.index == nil {
		return from, false
	}
	return p.index.Move(from, dir)
}

func (p *Packer) usable() bool {
	if p.width <= minUsableWidth {
		return false
	}
	p.colWidth = (p.width - p.spacing*float64(p.columns-1)) / float64(p.columns)
	return p.colWidth > 0 && !math.IsInf(p.colWidth, 0) && !math.IsNaN(p.colWidth)
}

// deferPack marks a single outstanding deferred attempt. Repeated calls while
// one is pending keep the existing token so only one fallback timer fires.
func (p *Packer) deferPack() {
	events.Layout.Deferred(p.width)
	if p.retryPending {
		return
	}
	p.retryPending = true
	p.retryGen++
}

func (p *Packer) repack() {
	for i := range p.heights {
		p.heights[i] = 0
	}
	p.boxes = p.boxes[:0]
	p.place(p.items)
	p.rebuildIndex()
}

// place packs items in order: skip items whose computed height is not a
// positive finite number, otherwise drop each into the currently shortest
// column (lowest index on ties).
func (p *Packer) place(items []dataset.Item) {
	skipped := 0
	for _, it := range items {
		h := math.Round(p.colWidth * it.Height / it.Width)
		if math.IsInf(h, 0) || math.IsNaN(h) || h <= 0 {
			skipped++
			continue
		}
		col := p.shortestColumn()
		x := float64(col) * (p.colWidth + p.spacing)
		y := p.heights[col]
		p.boxes = append(p.boxes, Box{Item: it, Col: col, X: x, Y: y, W: p.colWidth, H: h})
		p.heights[col] += h + p.spacing
	}
	events.Layout.Packed(p.columns, len(p.boxes), skipped, p.Height())
}

func (p *Packer) shortestColumn() int {
	col := 0
	for i := 1; i < p.columns; i++ {
		if p.heights[i] < p.heights[col] {
			col = i
		}
	}
	return col
}

func (p *Packer) rebuildIndex() {
	p.index = NewIndex(p.boxes)
}
