package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellEntry pairs a particle index with the position it was inserted at.
// The position is cached so that neighbor searches never chase back into the
// particle arrays mid-scan.
type CellEntry struct {
	Index int
	Pos   Vec
}

// CellGrid is a uniform cell-linked list over a body's domain. Cell spacing
// is fixed at construction to the body's kernel cutoff, so a single-ring scan
// is sufficient for same-resolution searches. Cell storage is reused across
// rebuilds: Clear resets lengths but keeps capacity.
type CellGrid struct {
	bounds  Box
	spacing float64
	nx, ny  int
	cells   [][]CellEntry
}

// NewCellGrid creates a grid covering domain plus a margin of one cell
// spacing on every side.
func NewCellGrid(domain Box, spacing float64) *CellGrid {
	bounds := Pad(domain, spacing)
	span := Span(bounds)

	nx := int(math.Ceil(span.X/spacing)) + 1
	ny := int(math.Ceil(span.Y/spacing)) + 1

	g := &CellGrid{
		bounds:  bounds,
		spacing: spacing,
		nx:      nx,
		ny:      ny,
		cells:   make([][]CellEntry, nx*ny),
	}
	return g
}

// Spacing returns the cell edge length.
func (g *CellGrid) Spacing() float64 { return g.spacing }

// Size returns the cell counts along each axis.
func (g *CellGrid) Size() (nx, ny int) { return g.nx, g.ny }

// Bounds returns the mesh bounds, domain plus margin.
func (g *CellGrid) Bounds() Box { return g.bounds }

// CellIndex maps a position to cell coordinates. The division floors toward
// negative infinity and the result is clamped to [0, n-1] per axis: positions
// outside the mesh land in an edge cell rather than failing. Boundary
// policies are responsible for keeping particles in range; BoundsCheck
// exposes the unclamped test for callers that want to assert.
func (g *CellGrid) CellIndex(pos Vec) (cx, cy int) {
	rel := r2.Sub(pos, g.bounds.Min)
	cx = clamp(int(math.Floor(rel.X/g.spacing)), g.nx-1)
	cy = clamp(int(math.Floor(rel.Y/g.spacing)), g.ny-1)
	return cx, cy
}

// BoundsCheck returns true if pos maps to a cell without clamping.
func (g *CellGrid) BoundsCheck(pos Vec) bool {
	rel := r2.Sub(pos, g.bounds.Min)
	cx := int(math.Floor(rel.X / g.spacing))
	cy := int(math.Floor(rel.Y / g.spacing))
	return cx >= 0 && cx < g.nx && cy >= 0 && cy < g.ny
}

// Clear empties every cell without releasing storage.
func (g *CellGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert appends the (index, pos) pair to the cell for pos. It does not
// deduplicate; the caller inserts each index at most once per rebuild.
func (g *CellGrid) Insert(index int, pos Vec) {
	cx, cy := g.CellIndex(pos)
	i := cy*g.nx + cx
	g.cells[i] = append(g.cells[i], CellEntry{index, pos})
}

// Cell returns the entries of cell (cx, cy).
func (g *CellGrid) Cell(cx, cy int) []CellEntry {
	return g.cells[cy*g.nx+cx]
}

// RangeCells calls fn for every cell within Chebyshev distance r of
// (cx, cy), clipped to the grid. No wraparound: periodicity is expressed by
// ghost entries, never by the grid itself.
func (g *CellGrid) RangeCells(cx, cy, r int, fn func(entries []CellEntry)) {
	for m := max(cy-r, 0); m <= min(cy+r, g.ny-1); m++ {
		for l := max(cx-r, 0); l <= min(cx+r, g.nx-1); l++ {
			fn(g.cells[m*g.nx+l])
		}
	}
}

// SearchRange returns how many cells outward a search from a body at
// originLevel must scan in a grid owned by a body at targetLevel. Levels
// count refinement: higher is finer. A coarser origin searching a finer
// target must widen the scan so that everything within its larger cutoff is
// found; all other pairings need a single ring.
//
// Computed once per relation pair per step, never per particle.
func SearchRange(originLevel, targetLevel int) int {
	if originLevel >= targetLevel {
		return 1
	}
	return 1 << (targetLevel - originLevel)
}

func clamp(x, upper int) int {
	if x < 0 {
		return 0
	}
	if x > upper {
		return upper
	}
	return x
}
