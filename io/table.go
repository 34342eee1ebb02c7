package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/Aric1996/SPHinXsys/geom"
)

// Lattice fills domain with a square lattice of positions at the given
// spacing, offset half a spacing from the lower corner so no particle sits
// exactly on a bound.
func Lattice(domain geom.Box, spacing float64) []geom.Vec {
	span := geom.Span(domain)
	nx := int(math.Floor(span.X / spacing))
	ny := int(math.Floor(span.Y / spacing))

	pos := make([]geom.Vec, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			pos = append(pos, geom.Vec{
				X: domain.Min.X + (float64(i)+0.5)*spacing,
				Y: domain.Min.Y + (float64(j)+0.5)*spacing,
			})
		}
	}
	return pos
}

// ReadParticleTable reads initial positions from a whitespace table with x
// and y in the first two columns.
func ReadParticleTable(file string) ([]geom.Vec, error) {
	cols, err := table.ReadTable(file, []int{0, 1}, nil)
	if err != nil {
		return nil, fmt.Errorf("reading particle table %s: %w", file, err)
	}

	xs, ys := cols[0], cols[1]
	pos := make([]geom.Vec, len(xs))
	for i := range xs {
		pos[i] = geom.Vec{X: xs[i], Y: ys[i]}
	}
	return pos, nil
}
