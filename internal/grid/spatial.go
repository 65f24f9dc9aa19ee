package grid

import "math"

// Navigation tuning constants. These are empirically chosen values carried
// over from the picker's interactive tuning; their effect on navigation feel
// matters more than geometric optimality, so they stay named and adjustable
// rather than derived.
const (
	// edgeTolerance is how close (in pixels) a box edge must be to the
	// pack's extent to count as touching that boundary.
	edgeTolerance = 2.0

	// columnSlack widens the nearest-column horizontal distance when
	// choosing Left/Right targets, tolerating imperfect column alignment.
	columnSlack = 20.0

	// horizontalWeight multiplies the horizontal delta in the Up/Down
	// distance metric, biasing moves toward staying in the same visual
	// column despite masonry's irregular rows.
	horizontalWeight = 5.0
)

type spatialEntry struct {
	box    Box
	cx, cy float64
	left   bool
	right  bool
	top    bool
	bottom bool
}

// Index is the derived per-pack geometry used for keyboard navigation over
// an irregular masonry layout, where row/column index arithmetic cannot
// work. It is rebuilt after every pack and never authoritative state.
type Index struct {
	entries []spatialEntry
}

// NewIndex derives the spatial index for a set of placed boxes.
func NewIndex(boxes []Box) *Index {
	ix := &Index{entries: make([]spatialEntry, len(boxes))}
	if len(boxes) == 0 {
		return ix
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range boxes {
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+b.W)
		maxY = math.Max(maxY, b.Y+b.H)
	}
	for i, b := range boxes {
		ix.entries[i] = spatialEntry{
			box:    b,
			cx:     b.X + b.W/2,
			cy:     b.Y + b.H/2,
			left:   b.X-minX <= edgeTolerance,
			right:  maxX-(b.X+b.W) <= edgeTolerance,
			top:    b.Y-minY <= edgeTolerance,
			bottom: maxY-(b.Y+b.H) <= edgeTolerance,
		}
	}
	return ix
}

// Len returns the number of indexed boxes.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Move resolves a directional key from the given box index. Boundary moves
// are consumed without moving, except Up at the top boundary which
// propagates out so the host can move focus elsewhere.
func (ix *Index) Move(from int, dir Direction) (next int, propagate bool) {
	if from < 0 || from >= len(ix.entries) {
		return from, false
	}
	cur := ix.entries[from]
	switch dir {
	case DirUp:
		if cur.top {
			return from, true
		}
		return ix.vertical(from, cur, -1), false
	case DirDown:
		if cur.bottom {
			return from, false
		}
		return ix.vertical(from, cur, 1), false
	case DirLeft:
		if cur.left {
			return from, false
		}
		return ix.horizontal(from, cur, -1), false
	case DirRight:
		if cur.right {
			return from, false
		}
		return ix.horizontal(from, cur, 1), false
	}
	return from, false
}

// horizontal finds the Left/Right target: restrict to boxes whose center is
// strictly on the requested side, identify the nearest column by minimal
// horizontal center distance, widen by columnSlack, then prefer the
// candidate with the largest vertical overlap, falling back to the closest
// vertical center.
func (ix *Index) horizontal(from int, cur spatialEntry, sign float64) int {
	minDist := math.Inf(1)
	for i, e := range ix.entries {
		if i == from {
			continue
		}
		dist := (e.cx - cur.cx) * sign
		if dist <= 0 {
			continue
		}
		if dist < minDist {
			minDist = dist
		}
	}
	if math.IsInf(minDist, 1) {
		return from
	}

	best := from
	bestOverlap := 0.0
	fallback := from
	fallbackDist := math.Inf(1)
	for i, e := range ix.entries {
		if i == from {
			continue
		}
		dist := (e.cx - cur.cx) * sign
		if dist <= 0 || dist > minDist+columnSlack {
			continue
		}
		overlap := math.Min(cur.box.Y+cur.box.H, e.box.Y+e.box.H) - math.Max(cur.box.Y, e.box.Y)
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = i
		}
		if vd := math.Abs(e.cy - cur.cy); vd < fallbackDist {
			fallbackDist = vd
			fallback = i
		}
	}
	if bestOverlap > 0 {
		return best
	}
	return fallback
}

// vertical finds the Up/Down target: restrict to boxes whose center is
// strictly above/below, then minimize the weighted distance
// sqrt((horizontalWeight*dx)^2 + dy^2).
func (ix *Index) vertical(from int, cur spatialEntry, sign float64) int {
	best := from
	bestScore := math.Inf(1)
	for i, e := range ix.entries {
		if i == from {
			continue
		}
		dy := (e.cy - cur.cy) * sign
		if dy <= 0 {
			continue
		}
		dx := e.cx - cur.cx
		score := math.Hypot(horizontalWeight*dx, dy)
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
