// Package body owns the particle storage for one physical body: contiguous
// field arrays with an explicit real/ghost index-range convention, a species
// registry for scalar concentration fields, and the body's cell-linked list.
package body

import (
	"fmt"

	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/kernel"
)

// Body is a collection of particles representing one physical object. All
// per-particle fields are structure-of-arrays slices indexed the same way:
// [0, RealCount) are real particles, [RealCount, TotalCount) are ghosts
// appended by boundary policies and discarded at the start of every step.
type Body struct {
	Name            string
	RefinementLevel int
	Spacing         float64
	Kernel          kernel.Kernel
	Domain          geom.Box

	Pos       []geom.Vec
	Vel       []geom.Vec
	AccOthers []geom.Vec

	species      [][]float64
	speciesIndex map[string]int
	speciesNames []string

	realCount   int
	ghostCount  int
	ghostSource []int

	grid *geom.CellGrid
}

// New creates an empty body. The cell grid's spacing is fixed here to the
// kernel cutoff and never changes afterwards.
func New(name string, level int, spacing float64, k kernel.Kernel, domain geom.Box) *Body {
	return &Body{
		Name:            name,
		RefinementLevel: level,
		Spacing:         spacing,
		Kernel:          k,
		Domain:          domain,
		speciesIndex:    map[string]int{},
		grid:            geom.NewCellGrid(domain, k.CutoffRadius()),
	}
}

// AddParticles appends real particles at the given positions with zero
// velocity. It must not be called while ghosts exist.
func (b *Body) AddParticles(pos []geom.Vec) {
	if b.ghostCount != 0 {
		panic("body: AddParticles called while ghost particles exist")
	}
	b.Pos = append(b.Pos, pos...)
	b.Vel = append(b.Vel, make([]geom.Vec, len(pos))...)
	b.AccOthers = append(b.AccOthers, make([]geom.Vec, len(pos))...)
	for s := range b.species {
		b.species[s] = append(b.species[s], make([]float64, len(pos))...)
	}
	b.realCount += len(pos)
}

// RealCount returns the number of real particles.
func (b *Body) RealCount() int { return b.realCount }

// GhostCount returns the number of ghosts valid this step.
func (b *Body) GhostCount() int { return b.ghostCount }

// TotalCount returns the number of real plus ghost particles.
func (b *Body) TotalCount() int { return b.realCount + b.ghostCount }

// Grid returns the body's cell-linked list.
func (b *Body) Grid() *geom.CellGrid { return b.grid }

// RegisterSpecies adds a named concentration field, zero-filled for current
// particles, and returns its index. Registering an existing name returns the
// existing index.
func (b *Body) RegisterSpecies(name string) int {
	if i, ok := b.speciesIndex[name]; ok {
		return i
	}
	i := len(b.species)
	b.species = append(b.species, make([]float64, len(b.Pos)))
	b.speciesIndex[name] = i
	b.speciesNames = append(b.speciesNames, name)
	return i
}

// SpeciesIndex returns the index of a registered species.
func (b *Body) SpeciesIndex(name string) (int, bool) {
	i, ok := b.speciesIndex[name]
	return i, ok
}

// Species returns the concentration array for species i, covering real and
// ghost particles.
func (b *Body) Species(i int) []float64 { return b.species[i] }

// SetSpecies overwrites the real-particle values of a named species. A length
// mismatch against the particle count is a configuration error: continuing
// would silently corrupt the physics, so the caller is expected to abort.
func (b *Body) SetSpecies(name string, values []float64) error {
	i, ok := b.speciesIndex[name]
	if !ok {
		return fmt.Errorf("body %s: species %q not registered", b.Name, name)
	}
	if len(values) != b.realCount {
		return fmt.Errorf("body %s: species %q has %d values for %d particles",
			b.Name, name, len(values), b.realCount)
	}
	copy(b.species[i], values)
	return nil
}

// InsertGhost clones particle src into a fresh ghost slot and returns the
// ghost's index. Storage beyond the real count is reused across steps; only
// the boundary-policy creation phase may call this, and only from a
// sequential pass.
func (b *Body) InsertGhost(src int) int {
	idx := b.realCount + b.ghostCount

	if idx < len(b.Pos) {
		b.Pos[idx] = b.Pos[src]
		b.Vel[idx] = b.Vel[src]
		b.AccOthers[idx] = b.AccOthers[src]
		for s := range b.species {
			b.species[s][idx] = b.species[s][src]
		}
	} else {
		b.Pos = append(b.Pos, b.Pos[src])
		b.Vel = append(b.Vel, b.Vel[src])
		b.AccOthers = append(b.AccOthers, b.AccOthers[src])
		for s := range b.species {
			b.species[s] = append(b.species[s], b.species[s][src])
		}
	}

	if b.ghostCount < len(b.ghostSource) {
		b.ghostSource[b.ghostCount] = src
	} else {
		b.ghostSource = append(b.ghostSource, src)
	}
	b.ghostCount++
	return idx
}

// GhostSource returns the real particle a ghost was cloned from.
func (b *Body) GhostSource(ghost int) int {
	return b.ghostSource[ghost-b.realCount]
}

// ClearGhosts invalidates all ghosts. Their storage stays allocated for the
// next creation phase.
func (b *Body) ClearGhosts() {
	b.ghostCount = 0
}

// CopyFrom overwrites particle dst with the field values of particle src.
// Boundary update phases use it to refresh a ghost from its source before
// re-applying the boundary transform.
func (b *Body) CopyFrom(dst, src int) {
	b.Pos[dst] = b.Pos[src]
	b.Vel[dst] = b.Vel[src]
	b.AccOthers[dst] = b.AccOthers[src]
	for s := range b.species {
		b.species[s][dst] = b.species[s][src]
	}
}

// UpdateCellLinkedList rebuilds the grid from current positions, real and
// ghost alike. It is the only pass that mutates cell storage; every search
// in the same step happens after it returns.
func (b *Body) UpdateCellLinkedList() {
	b.grid.Clear()
	n := b.TotalCount()
	for i := 0; i < n; i++ {
		b.grid.Insert(i, b.Pos[i])
	}
}
