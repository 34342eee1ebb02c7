// Package material holds the diffusion property tables consumed by
// reaction-diffusion force modules. The modules themselves live outside this
// library; what is kept here is the property setup that must stay consistent
// with the particle storage.
package material

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
)

// DirectionalDiffusion is anisotropic diffusion with a preferred direction:
// the diffusivity tensor is d*I + d_bias*(dir ⊗ dir). The tensor is carried
// as the inverse of its Cholesky factor, which is the form the kernel
// gradient correction needs.
type DirectionalDiffusion struct {
	// SpeciesIndex is the species being diffused, GradientIndex the species
	// whose gradient drives it. They coincide for plain diffusion.
	SpeciesIndex  int
	GradientIndex int

	DiffusionCoeff float64
	BiasCoeff      float64
	BiasDirection  geom.Vec

	invCholesky *mat.TriDense
}

// NewDirectionalDiffusion builds the property set. The coefficients must
// produce a positive-definite tensor.
func NewDirectionalDiffusion(
	species, gradient int, diffCf, biasCf float64, dir geom.Vec,
) (*DirectionalDiffusion, error) {
	d := &DirectionalDiffusion{
		SpeciesIndex:   species,
		GradientIndex:  gradient,
		DiffusionCoeff: diffCf,
		BiasCoeff:      biasCf,
		BiasDirection:  dir,
	}
	inv, err := inverseCholesky(diffCf, biasCf, dir)
	if err != nil {
		return nil, err
	}
	d.invCholesky = inv
	return d, nil
}

// inverseCholesky returns L^-1 for the Cholesky factor L of
// d*I + bias*(dir ⊗ dir).
func inverseCholesky(diffCf, biasCf float64, dir geom.Vec) (*mat.TriDense, error) {
	sym := mat.NewSymDense(2, []float64{
		diffCf + biasCf*dir.X*dir.X, biasCf * dir.X * dir.Y,
		biasCf * dir.X * dir.Y, diffCf + biasCf*dir.Y*dir.Y,
	})

	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return nil, fmt.Errorf(
			"material: diffusivity tensor (d=%g, bias=%g) is not positive definite", diffCf, biasCf)
	}

	l := mat.NewTriDense(2, mat.Lower, nil)
	ch.LTo(l)

	inv := mat.NewTriDense(2, mat.Lower, nil)
	if err := inv.InverseTri(l); err != nil {
		return nil, fmt.Errorf("material: inverting Cholesky factor: %w", err)
	}
	return inv, nil
}

// InterParticleDiffusionCoeff returns the effective scalar diffusivity for a
// particle pair along the unit direction e: 1/|L^-1 e|^2.
func (d *DirectionalDiffusion) InterParticleDiffusionCoeff(e geom.Vec) float64 {
	tx := d.invCholesky.At(0, 0) * e.X
	ty := d.invCholesky.At(1, 0)*e.X + d.invCholesky.At(1, 1)*e.Y
	return 1.0 / (tx*tx + ty*ty)
}

// LocalDirectionalDiffusion extends DirectionalDiffusion with per-particle
// fiber directions, as used for anisotropic conduction in fibrous tissue.
type LocalDirectionalDiffusion struct {
	DirectionalDiffusion

	localDirections  []geom.Vec
	localInvCholesky []*mat.TriDense
}

// NewLocalDirectionalDiffusion builds the property set with the global bias
// as the fallback before local fibers are assigned.
func NewLocalDirectionalDiffusion(
	species, gradient int, diffCf, biasCf float64, dir geom.Vec,
) (*LocalDirectionalDiffusion, error) {
	base, err := NewDirectionalDiffusion(species, gradient, diffCf, biasCf, dir)
	if err != nil {
		return nil, err
	}
	return &LocalDirectionalDiffusion{DirectionalDiffusion: *base}, nil
}

// SetupLocalProperties assigns one fiber direction per real particle. A
// fiber count that disagrees with the body's particle count is a
// configuration error; continuing would silently corrupt the physics, so
// callers abort on it.
func (d *LocalDirectionalDiffusion) SetupLocalProperties(b *body.Body, fibers []geom.Vec) error {
	if len(fibers) != b.RealCount() {
		return fmt.Errorf(
			"material: %d fiber directions for %d particles in body %s",
			len(fibers), b.RealCount(), b.Name)
	}

	d.localDirections = make([]geom.Vec, len(fibers))
	d.localInvCholesky = make([]*mat.TriDense, len(fibers))
	for i, fiber := range fibers {
		inv, err := inverseCholesky(d.DiffusionCoeff, d.BiasCoeff, fiber)
		if err != nil {
			return fmt.Errorf("particle %d: %w", i, err)
		}
		d.localDirections[i] = fiber
		d.localInvCholesky[i] = inv
	}
	return nil
}

// LocalInterParticleDiffusionCoeff returns the pair diffusivity along unit
// direction e using particle i's local tensor, falling back to the global
// tensor when no local fibers were assigned.
func (d *LocalDirectionalDiffusion) LocalInterParticleDiffusionCoeff(i int, e geom.Vec) float64 {
	if d.localInvCholesky == nil {
		return d.InterParticleDiffusionCoeff(e)
	}
	inv := d.localInvCholesky[i]
	tx := inv.At(0, 0) * e.X
	ty := inv.At(1, 0)*e.X + inv.At(1, 1)*e.Y
	return 1.0 / (tx*tx + ty*ty)
}
