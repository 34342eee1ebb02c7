// Package geom provides the vector, box, and cell-grid primitives used by the
// particle engine. Vectors and boxes are gonum's planar types so that all
// downstream math composes with the rest of the gonum ecosystem.
package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a position, velocity, or displacement in the plane.
type Vec = r2.Vec

// Box is an axis-aligned bounding box.
type Box = r2.Box

// Axis selects a coordinate direction.
type Axis int

const (
	X Axis = iota
	Y
)

// NumAxes is the spatial dimension of the build.
const NumAxes = 2

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	}
	return "?"
}

// Component returns the coordinate of v along a.
func Component(v Vec, a Axis) float64 {
	if a == X {
		return v.X
	}
	return v.Y
}

// SetComponent sets the coordinate of v along a.
func SetComponent(v *Vec, a Axis, x float64) {
	if a == X {
		v.X = x
	} else {
		v.Y = x
	}
}

// AddComponent adds dx to the coordinate of v along a.
func AddComponent(v *Vec, a Axis, dx float64) {
	if a == X {
		v.X += dx
	} else {
		v.Y += dx
	}
}

// AxisVec returns a vector with x along a and zero elsewhere.
func AxisVec(a Axis, x float64) Vec {
	v := Vec{}
	SetComponent(&v, a, x)
	return v
}

// Pad returns b grown by margin on every side.
func Pad(b Box, margin float64) Box {
	return Box{
		Min: Vec{X: b.Min.X - margin, Y: b.Min.Y - margin},
		Max: Vec{X: b.Max.X + margin, Y: b.Max.Y + margin},
	}
}

// Span returns the edge lengths of b.
func Span(b Box) Vec {
	return r2.Sub(b.Max, b.Min)
}

// Contains returns true if p lies inside b, boundary included.
func Contains(b Box, p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
