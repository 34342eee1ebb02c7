// Package dynamics provides the whole-body reduce operations used to monitor
// and validate a running simulation, plus small per-particle setup passes.
package dynamics

import (
	"math"
	"math/rand"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/parallel"
)

// MaximumSpeed returns the largest velocity magnitude among real particles.
func MaximumSpeed(b *body.Body) float64 {
	return parallel.Reduce(b.RealCount(), 0.0,
		func(i int) float64 {
			v := b.Vel[i]
			return math.Sqrt(v.X*v.X + v.Y*v.Y)
		},
		math.Max,
	)
}

// VelocityBoundCheck reports whether any real particle moves faster than
// bound. It is the usual blow-up detector: a true result means the time step
// or the configuration is wrong.
func VelocityBoundCheck(b *body.Body, bound float64) bool {
	return parallel.Reduce(b.RealCount(), false,
		func(i int) bool {
			v := b.Vel[i]
			return math.Sqrt(v.X*v.X+v.Y*v.Y) > bound
		},
		func(a, b bool) bool { return a || b },
	)
}

// UpperFront returns the largest x coordinate among real particles, the
// advancing front of a dam-break style flow.
func UpperFront(b *body.Body) float64 {
	return parallel.Reduce(b.RealCount(), math.Inf(-1),
		func(i int) float64 { return b.Pos[i].X },
		math.Max,
	)
}

// Bounds returns the axis-aligned bounding box of the real particles.
func Bounds(b *body.Body) geom.Box {
	empty := geom.Box{
		Min: geom.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: geom.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	return parallel.Reduce(b.RealCount(), empty,
		func(i int) geom.Box {
			return geom.Box{Min: b.Pos[i], Max: b.Pos[i]}
		},
		func(p, q geom.Box) geom.Box {
			return geom.Box{
				Min: geom.Vec{X: math.Min(p.Min.X, q.Min.X), Y: math.Min(p.Min.Y, q.Min.Y)},
				Max: geom.Vec{X: math.Max(p.Max.X, q.Max.X), Y: math.Max(p.Max.Y, q.Max.Y)},
			}
		},
	)
}

// Gravity is a uniform external acceleration field.
type Gravity struct {
	Acc geom.Vec
}

// InducedAcceleration returns the acceleration at a position. Uniform
// gravity ignores the position; the signature leaves room for spatially
// varying fields.
func (g Gravity) InducedAcceleration(pos geom.Vec) geom.Vec {
	return g.Acc
}

// RandomizePositions jitters every real particle by up to one particle
// spacing scaled by dt, in each coordinate. The random source is supplied by
// the caller so runs are reproducible.
func RandomizePositions(b *body.Body, rng *rand.Rand, dt float64) {
	for i := 0; i < b.RealCount(); i++ {
		b.Pos[i].X += dt * (rng.Float64() - 0.5) * 2 * b.Spacing
		b.Pos[i].Y += dt * (rng.Float64() - 0.5) * 2 * b.Spacing
	}
}
