package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/kernel"
)

func TestIsotropicCoeff(t *testing.T) {
	// With no bias the tensor is d*I: every unit direction sees d.
	d, err := NewDirectionalDiffusion(0, 0, 2.5, 0, geom.Vec{X: 1, Y: 0})
	assert.NoError(t, err)

	dirs := []geom.Vec{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
		{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	}
	for _, e := range dirs {
		assert.InDelta(t, 2.5, d.InterParticleDiffusionCoeff(e), 1e-12)
	}
}

func TestBiasedCoeff(t *testing.T) {
	// Bias along x: the tensor is diag(d+bias, d).
	d, err := NewDirectionalDiffusion(0, 0, 1.0, 3.0, geom.Vec{X: 1, Y: 0})
	assert.NoError(t, err)

	assert.InDelta(t, 4.0,
		d.InterParticleDiffusionCoeff(geom.Vec{X: 1, Y: 0}), 1e-12)
	assert.InDelta(t, 4.0,
		d.InterParticleDiffusionCoeff(geom.Vec{X: -1, Y: 0}), 1e-12)
	assert.InDelta(t, 1.0,
		d.InterParticleDiffusionCoeff(geom.Vec{X: 0, Y: 1}), 1e-12)

	// Between the axes the coefficient interpolates between the extremes.
	diag := d.InterParticleDiffusionCoeff(
		geom.Vec{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2})
	assert.Greater(t, diag, 1.0)
	assert.Less(t, diag, 4.0)
}

func TestRotatedBiasMatchesAxisAligned(t *testing.T) {
	// A bias along y must behave like the x-aligned tensor with the
	// directions swapped.
	d, err := NewDirectionalDiffusion(0, 0, 1.0, 3.0, geom.Vec{X: 0, Y: 1})
	assert.NoError(t, err)

	assert.InDelta(t, 4.0,
		d.InterParticleDiffusionCoeff(geom.Vec{X: 0, Y: 1}), 1e-12)
	assert.InDelta(t, 1.0,
		d.InterParticleDiffusionCoeff(geom.Vec{X: 1, Y: 0}), 1e-12)
}

func TestNonPositiveDefiniteRejected(t *testing.T) {
	_, err := NewDirectionalDiffusion(0, 0, -1.0, 0, geom.Vec{X: 1, Y: 0})
	assert.Error(t, err)

	_, err = NewDirectionalDiffusion(0, 0, 0, 0, geom.Vec{X: 1, Y: 0})
	assert.Error(t, err)
}

func TestLocalPropertiesSetup(t *testing.T) {
	domain := geom.Box{Min: geom.Vec{X: 0, Y: 0}, Max: geom.Vec{X: 10, Y: 10}}
	b := body.New("tissue", 0, 0.5, kernel.NewWendlandC2(0.65), domain)
	b.AddParticles([]geom.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}})

	d, err := NewLocalDirectionalDiffusion(0, 0, 1.0, 3.0, geom.Vec{X: 1, Y: 0})
	assert.NoError(t, err)

	// Before setup the global tensor is the fallback.
	assert.InDelta(t, 4.0,
		d.LocalInterParticleDiffusionCoeff(0, geom.Vec{X: 1, Y: 0}), 1e-12)

	// One fiber per particle is required.
	assert.Error(t, d.SetupLocalProperties(b, []geom.Vec{{X: 1, Y: 0}}))

	fibers := []geom.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}}
	assert.NoError(t, d.SetupLocalProperties(b, fibers))

	// Particle 0's fiber lies along x, particle 1's along y.
	assert.InDelta(t, 4.0,
		d.LocalInterParticleDiffusionCoeff(0, geom.Vec{X: 1, Y: 0}), 1e-12)
	assert.InDelta(t, 1.0,
		d.LocalInterParticleDiffusionCoeff(0, geom.Vec{X: 0, Y: 1}), 1e-12)
	assert.InDelta(t, 1.0,
		d.LocalInterParticleDiffusionCoeff(1, geom.Vec{X: 1, Y: 0}), 1e-12)
	assert.InDelta(t, 4.0,
		d.LocalInterParticleDiffusionCoeff(1, geom.Vec{X: 0, Y: 1}), 1e-12)
}
