package boundary

import (
	"log"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/parallel"
)

// PeriodicTranslate wraps particle positions across a periodic axis without
// creating any image state. It is the policy of choice when the interacting
// sides are handled by one of the ghosting variants or when only advection
// matters.
type PeriodicTranslate struct {
	region
}

// NewPeriodicTranslate validates the domain bounds and builds the policy.
func NewPeriodicTranslate(b *body.Body, axis geom.Axis) (*PeriodicTranslate, error) {
	r, err := newPeriodicRegion(b, axis)
	if err != nil {
		return nil, err
	}
	return &PeriodicTranslate{region: r}, nil
}

// Apply runs the lower-bound scan, then the upper-bound scan. Each pass is
// parallel over real particles; a particle is wrapped at most once per step
// because after the first shift it no longer satisfies either trigger.
func (c *PeriodicTranslate) Apply() {
	b, axis := c.body, c.axis
	n := b.RealCount()

	parallel.For(n, func(i int) {
		if geom.Component(b.Pos[i], axis) < c.lower {
			geom.AddComponent(&b.Pos[i], axis, c.translation)
		}
	})
	parallel.For(n, func(i int) {
		if geom.Component(b.Pos[i], axis) > c.upper {
			geom.AddComponent(&b.Pos[i], axis, -c.translation)
		}
	})
}

// PeriodicCellList makes the grid periodic without particle records: every
// real particle within one cell spacing of a bound gets an extra grid entry
// at its translated position, under its own index. Neighbor searches then
// see the particle near both edges at once while its state is never
// duplicated.
type PeriodicCellList struct {
	region
}

// NewPeriodicCellList validates the domain bounds and builds the policy.
func NewPeriodicCellList(b *body.Body, axis geom.Axis) (*PeriodicCellList, error) {
	r, err := newPeriodicRegion(b, axis)
	if err != nil {
		return nil, err
	}
	return &PeriodicCellList{region: r}, nil
}

// Apply inserts the image entries for both bounds. The scans append to
// shared cell storage, so they run sequentially; they must follow the grid
// rebuild and precede the neighbor build.
func (c *PeriodicCellList) Apply() {
	b := c.body
	grid := b.Grid()
	n := b.RealCount()

	for _, pol := range []Polarity{Lower, Upper} {
		for i := 0; i < n; i++ {
			pos := b.Pos[i]
			if !c.inWindow(geom.Component(pos, c.axis), pol) {
				continue
			}
			translated := pos
			geom.AddComponent(&translated, c.axis, c.shift(pol))
			grid.Insert(i, translated)
		}
	}
}

// PeriodicGhosts realizes a periodic axis with full ghost particles: phase
// one clones bound-adjacent real particles into the ghost region and indexes
// them into the grid at translated positions; phase two, after force
// evaluation, refreshes every ghost from its source particle.
type PeriodicGhosts struct {
	region

	// ghosts[Lower] and ghosts[Upper] record the ghost indices created this
	// step; cleared at the start of every creation phase.
	ghosts  [2][]int
	created bool
}

// NewPeriodicGhosts validates the domain bounds and builds the policy.
func NewPeriodicGhosts(b *body.Body, axis geom.Axis) (*PeriodicGhosts, error) {
	r, err := newPeriodicRegion(b, axis)
	if err != nil {
		return nil, err
	}
	return &PeriodicGhosts{region: r}, nil
}

// Ghosts returns the ghost indices recorded for a bound this step.
func (c *PeriodicGhosts) Ghosts(p Polarity) []int { return c.ghosts[p] }

// CreateGhosts runs the creation phase: stale ghost lists are dropped, then
// the lower and upper scans clone every real particle inside the trigger
// window, translate the clone across the domain, and insert it into the
// grid. The pass appends to the body's ghost region and the grid, so it is
// sequential.
func (c *PeriodicGhosts) CreateGhosts() {
	c.ghosts[Lower] = c.ghosts[Lower][:0]
	c.ghosts[Upper] = c.ghosts[Upper][:0]
	c.created = true

	b := c.body
	grid := b.Grid()
	n := b.RealCount()

	for _, pol := range []Polarity{Lower, Upper} {
		for i := 0; i < n; i++ {
			pos := b.Pos[i]
			if !c.inWindow(geom.Component(pos, c.axis), pol) {
				continue
			}
			ghost := b.InsertGhost(i)
			geom.AddComponent(&b.Pos[ghost], c.axis, c.shift(pol))
			c.ghosts[pol] = append(c.ghosts[pol], ghost)
			grid.Insert(ghost, b.Pos[ghost])
		}
	}
}

// UpdateGhosts runs the update phase: each recorded ghost is overwritten
// with its source particle's current state and the translation is applied
// again. Each ghost slot is touched by exactly one index, so the pass is
// parallel.
func (c *PeriodicGhosts) UpdateGhosts() {
	if !c.created {
		log.Fatalf(
			"boundary: ghost update on body %s axis %s before creation; the creation and update steps must be called separately",
			c.body.Name, c.axis)
	}

	b := c.body
	for _, pol := range []Polarity{Lower, Upper} {
		ghosts := c.ghosts[pol]
		shift := c.shift(pol)
		parallel.For(len(ghosts), func(i int) {
			ghost := ghosts[i]
			b.CopyFrom(ghost, b.GhostSource(ghost))
			geom.AddComponent(&b.Pos[ghost], c.axis, shift)
		})
	}
}
