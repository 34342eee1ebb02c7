// Package kernel provides the smoothing functions used to weight particle
// interactions. The engine only ever asks a kernel two things: how far it
// reaches, and its value and gradient for a single displacement.
package kernel

import (
	"math"

	"github.com/Aric1996/SPHinXsys/geom"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kernel is a smoothing function with compact support.
type Kernel interface {
	// CutoffRadius is the interaction range; W and GradW are zero beyond it.
	CutoffRadius() float64
	// W evaluates the kernel for a displacement vector.
	W(disp geom.Vec) float64
	// GradW evaluates the kernel gradient for a displacement vector. The
	// gradient points along disp, matching the source-minus-target sign
	// convention used by the neighbor builder.
	GradW(disp geom.Vec) geom.Vec
}

// Choose picks the kernel governing an interaction between two bodies: the
// one with the larger cutoff wins, so a coarse body's reach is never
// truncated by a finer partner. On a tie either kernel gives identical
// results; the first is returned.
func Choose(a, b Kernel) Kernel {
	if b.CutoffRadius() > a.CutoffRadius() {
		return b
	}
	return a
}

// WendlandC2 is the quintic Wendland kernel, support 2h. Its derivative does
// not vanish at the origin's neighbors as fast as the cubic spline's, which
// makes it the usual default for free-surface flows.
type WendlandC2 struct {
	h     float64
	sigma float64 // 2D normalization 7/(4 pi h^2)
}

// NewWendlandC2 builds the kernel for smoothing length h.
func NewWendlandC2(h float64) *WendlandC2 {
	return &WendlandC2{h: h, sigma: 7.0 / (4.0 * math.Pi * h * h)}
}

func (k *WendlandC2) CutoffRadius() float64 { return 2 * k.h }

func (k *WendlandC2) W(disp geom.Vec) float64 {
	q := math.Sqrt(disp.X*disp.X+disp.Y*disp.Y) / k.h
	if q >= 2 {
		return 0
	}
	t := 1 - 0.5*q
	t2 := t * t
	return k.sigma * t2 * t2 * (2*q + 1)
}

func (k *WendlandC2) GradW(disp geom.Vec) geom.Vec {
	r := math.Sqrt(disp.X*disp.X + disp.Y*disp.Y)
	q := r / k.h
	if q >= 2 || r == 0 {
		return geom.Vec{}
	}
	// dW/dq = -5 sigma q (1 - q/2)^3
	t := 1 - 0.5*q
	dWdr := -5 * k.sigma * q * t * t * t / k.h
	return r2.Scale(dWdr/r, disp)
}

// CubicSpline is the M4 cubic spline kernel, support 2h.
type CubicSpline struct {
	h     float64
	sigma float64 // 2D normalization 10/(7 pi h^2)
}

// NewCubicSpline builds the kernel for smoothing length h.
func NewCubicSpline(h float64) *CubicSpline {
	return &CubicSpline{h: h, sigma: 10.0 / (7.0 * math.Pi * h * h)}
}

func (k *CubicSpline) CutoffRadius() float64 { return 2 * k.h }

func (k *CubicSpline) W(disp geom.Vec) float64 {
	q := math.Sqrt(disp.X*disp.X+disp.Y*disp.Y) / k.h
	switch {
	case q < 1:
		return k.sigma * (1 - 1.5*q*q + 0.75*q*q*q)
	case q < 2:
		t := 2 - q
		return k.sigma * 0.25 * t * t * t
	}
	return 0
}

func (k *CubicSpline) GradW(disp geom.Vec) geom.Vec {
	r := math.Sqrt(disp.X*disp.X + disp.Y*disp.Y)
	q := r / k.h
	if q >= 2 || r == 0 {
		return geom.Vec{}
	}

	var dWdq float64
	if q < 1 {
		dWdq = k.sigma * (-3*q + 2.25*q*q)
	} else {
		t := 2 - q
		dWdq = -k.sigma * 0.75 * t * t
	}
	return r2.Scale(dWdq/(k.h*r), disp)
}
