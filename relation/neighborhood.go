// Package relation builds per-particle neighbor lists against the cell
// grids of the participating bodies.
package relation

import (
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/kernel"
)

// Neighbor is one adjacency entry: the target particle, the displacement
// from target to source (source position minus target position), and the
// kernel value and gradient for that displacement.
type Neighbor struct {
	Index        int
	Displacement geom.Vec
	W            float64
	GradW        geom.Vec
}

// Neighborhood is the adjacency record of one source particle against one
// target body. Capacity persists across steps so the hot path almost never
// allocates; only the first CurrentSize entries are valid, anything beyond
// is stale storage from an earlier step.
type Neighborhood struct {
	entries []Neighbor

	// CurrentSize is the number of entries valid this step. Entries are
	// unordered within the neighborhood.
	CurrentSize int
}

// Entries returns the valid entries for this step.
func (n *Neighborhood) Entries() []Neighbor {
	return n.entries[:n.CurrentSize]
}

// Capacity returns the allocated entry storage.
func (n *Neighborhood) Capacity() int { return len(n.entries) }

// put writes entry number count. While count is below capacity the write is
// in place; past it the storage grows. The two paths keep reallocation out
// of the per-particle loop except when density actually increased.
func (n *Neighborhood) put(count, target int, disp geom.Vec, k kernel.Kernel) {
	e := Neighbor{
		Index:        target,
		Displacement: disp,
		W:            k.W(disp),
		GradW:        k.GradW(disp),
	}
	if count < len(n.entries) {
		n.entries[count] = e
	} else {
		n.entries = append(n.entries, e)
	}
}
