package relation

import (
	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/kernel"
	"github.com/Aric1996/SPHinXsys/parallel"

	"gonum.org/v1/gonum/spatial/r2"
)

// Inner is the neighbor relation of a body with itself.
type Inner struct {
	body  *body.Body
	hoods []Neighborhood
}

// NewInner creates the relation. Neighborhood storage is allocated lazily as
// the particle count is first seen.
func NewInner(b *body.Body) *Inner {
	return &Inner{body: b}
}

// Neighborhood returns the adjacency record of source particle i for this
// step. Force modules iterate Entries() read-only.
func (r *Inner) Neighborhood(i int) *Neighborhood { return &r.hoods[i] }

// Update rebuilds every real particle's neighborhood from the body's grid.
// Sources run in parallel: each one writes only its own slot. Ghost entries
// inserted by boundary policies are found like any other grid entry; only
// the zero-displacement self entry is skipped.
func (r *Inner) Update() {
	b := r.body
	n := b.RealCount()
	if len(r.hoods) < n {
		r.hoods = append(r.hoods, make([]Neighborhood, n-len(r.hoods))...)
	}

	grid := b.Grid()
	k := b.Kernel
	cutoff := k.CutoffRadius()
	cutoffSqr := cutoff * cutoff

	parallel.For(n, func(i int) {
		pos := b.Pos[i]
		hood := &r.hoods[i]
		count := 0

		cx, cy := grid.CellIndex(pos)
		grid.RangeCells(cx, cy, 1, func(entries []geom.CellEntry) {
			for _, e := range entries {
				disp := r2.Sub(pos, e.Pos)
				distSqr := disp.X*disp.X + disp.Y*disp.Y
				if distSqr > cutoffSqr {
					continue
				}
				if e.Index == i && distSqr == 0 {
					continue
				}
				hood.put(count, e.Index, disp, k)
				count++
			}
		})
		hood.CurrentSize = count
	})
}

// Contact is the neighbor relation of a source body against one or more
// target bodies it interacts with.
type Contact struct {
	source  *body.Body
	targets []*body.Body

	// hoods[t][i] is the neighborhood of source particle i in target t.
	hoods [][]Neighborhood
}

// NewContact creates the relation between a source body and its contact
// targets. Target sets must be disjoint from the source.
func NewContact(source *body.Body, targets ...*body.Body) *Contact {
	return &Contact{
		source:  source,
		targets: targets,
		hoods:   make([][]Neighborhood, len(targets)),
	}
}

// Neighborhood returns the adjacency record of source particle i against
// target body t for this step.
func (r *Contact) Neighborhood(t, i int) *Neighborhood { return &r.hoods[t][i] }

// Update rebuilds the contact neighborhoods. Target bodies are processed
// sequentially; within each pair the source particles run in parallel. The
// search range and governing kernel are derived once per pair, never per
// particle.
func (r *Contact) Update() {
	src := r.source
	n := src.RealCount()

	for t, target := range r.targets {
		if len(r.hoods[t]) < n {
			r.hoods[t] = append(r.hoods[t], make([]Neighborhood, n-len(r.hoods[t]))...)
		}

		grid := target.Grid()
		searchRange := geom.SearchRange(src.RefinementLevel, target.RefinementLevel)
		k := kernel.Choose(src.Kernel, target.Kernel)
		cutoff := k.CutoffRadius()
		cutoffSqr := cutoff * cutoff
		hoods := r.hoods[t]

		parallel.For(n, func(i int) {
			pos := src.Pos[i]
			hood := &hoods[i]
			count := 0

			cx, cy := grid.CellIndex(pos)
			grid.RangeCells(cx, cy, searchRange, func(entries []geom.CellEntry) {
				for _, e := range entries {
					// Displacement points from the neighboring particle to
					// the origin particle.
					disp := r2.Sub(pos, e.Pos)
					if disp.X*disp.X+disp.Y*disp.Y <= cutoffSqr {
						hood.put(count, e.Index, disp, k)
						count++
					}
				}
			})
			hood.CurrentSize = count
		})
	}
}
