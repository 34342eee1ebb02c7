package boundary

import (
	"log"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/parallel"
)

// Mirror models a solid symmetry wall on one bound of one axis: a particle
// that crosses the wall is reflected back across it and its normal velocity
// component is negated.
type Mirror struct {
	body     *body.Body
	axis     geom.Axis
	polarity Polarity
	bound    float64
}

// NewMirror builds the reflection policy for one side of the domain.
func NewMirror(b *body.Body, axis geom.Axis, polarity Polarity) *Mirror {
	bound := geom.Component(b.Domain.Min, axis)
	if polarity == Upper {
		bound = geom.Component(b.Domain.Max, axis)
	}
	return &Mirror{body: b, axis: axis, polarity: polarity, bound: bound}
}

// crossed reports whether coordinate x lies beyond the wall.
func (c *Mirror) crossed(x float64) bool {
	if c.polarity == Lower {
		return x < c.bound
	}
	return x > c.bound
}

// mirror reflects particle i across the wall in place.
func (c *Mirror) mirror(i int) {
	b := c.body
	geom.SetComponent(&b.Pos[i], c.axis, 2*c.bound-geom.Component(b.Pos[i], c.axis))
	geom.SetComponent(&b.Vel[i], c.axis, -geom.Component(b.Vel[i], c.axis))
}

// Apply reflects every real particle that has crossed the wall. Parallel
// over particles; each index only touches its own state.
func (c *Mirror) Apply() {
	b := c.body
	parallel.For(b.RealCount(), func(i int) {
		if c.crossed(geom.Component(b.Pos[i], c.axis)) {
			c.mirror(i)
		}
	})
}

// MirrorGhosts synthesizes the mirror images of wall-adjacent particles as
// ghosts, following the same two-phase create/update pattern as the
// periodic ghost policy but with the reflection transform.
type MirrorGhosts struct {
	Mirror
	spacing float64

	ghosts  []int
	created bool
}

// NewMirrorGhosts builds the ghost policy for one side of the domain.
func NewMirrorGhosts(b *body.Body, axis geom.Axis, polarity Polarity) *MirrorGhosts {
	return &MirrorGhosts{
		Mirror:  *NewMirror(b, axis, polarity),
		spacing: b.Grid().Spacing(),
	}
}

// Ghosts returns the ghost indices recorded this step.
func (c *MirrorGhosts) Ghosts() []int { return c.ghosts }

// inWindow reports whether a coordinate lies within one cell spacing inside
// the wall.
func (c *MirrorGhosts) inWindow(x float64) bool {
	if c.polarity == Lower {
		return x > c.bound && x < c.bound+c.spacing
	}
	return x < c.bound && x > c.bound-c.spacing
}

// CreateGhosts clears the stale ghost list and clones every wall-adjacent
// real particle, reflecting the clone across the wall and inserting it into
// the grid at the reflected position. Sequential: it appends to shared
// storage.
func (c *MirrorGhosts) CreateGhosts() {
	c.ghosts = c.ghosts[:0]
	c.created = true

	b := c.body
	grid := b.Grid()
	n := b.RealCount()

	for i := 0; i < n; i++ {
		if !c.inWindow(geom.Component(b.Pos[i], c.axis)) {
			continue
		}
		ghost := b.InsertGhost(i)
		c.mirror(ghost)
		c.ghosts = append(c.ghosts, ghost)
		grid.Insert(ghost, b.Pos[ghost])
	}
}

// UpdateGhosts refreshes each recorded ghost from its source and re-applies
// the reflection. Parallel: each ghost slot has exactly one writer.
func (c *MirrorGhosts) UpdateGhosts() {
	if !c.created {
		log.Fatalf(
			"boundary: ghost update on body %s axis %s (%s) before creation; the creation and update steps must be called separately",
			c.body.Name, c.axis, c.polarity)
	}

	b := c.body
	parallel.For(len(c.ghosts), func(i int) {
		ghost := c.ghosts[i]
		b.CopyFrom(ghost, b.GhostSource(ghost))
		c.mirror(ghost)
	})
}
