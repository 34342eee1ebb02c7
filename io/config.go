// Package io reads simulation case configurations and particle layouts.
package io

import (
	"github.com/Aric1996/SPHinXsys/geom"
)

const ExampleCaseFile = `[Case]

#######################
# Required Parameters #
#######################

# Number of time steps to run.
Steps = 200

# Time step size.
DT = 0.001

#######################
# Optional Parameters #
#######################

# Directory which diagnostics output will be written to.
# Output = path/to/output/dir

# Velocity magnitude above which the run is flagged as blown up.
# VelocityBound = 10.0

# Seed for the position jitter applied before the first step. Runs with the
# same seed are identical.
# Seed = 42

# Jitter scale passed to the randomizer; zero disables jitter.
# Jitter = 0.0

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out

[Body "fluid"]

#######################
# Required Parameters #
#######################

# Particle spacing of the initial lattice.
Spacing = 0.1

# Smoothing length of the body's kernel. Usually 1.3x the spacing.
SmoothingLength = 0.13

# Domain bounds, lowermost corner and uppermost corner.
LowerX = 0
LowerY = 0
UpperX = 10
UpperY = 10

#######################
# Optional Parameters #
#######################

# Relative resolution of the body. Higher is finer; bodies at different
# levels interact through wider grid scans. Default is 0.
# RefinementLevel = 0

# Kernel must be one of [ WendlandC2 | CubicSpline ]. Default is WendlandC2.
# Kernel = WendlandC2

# Read initial positions from a whitespace table (columns: x y) instead of
# filling the domain with a lattice.
# ParticleFile = path/to/particles.txt

# Uniform external acceleration.
# GravityX = 0
# GravityY = -9.81

[Boundary "wrap-x"]

# Body names the [Body "..."] section this boundary attaches to.
Body = fluid

# Axis must be one of [ X | Y ].
Axis = X

# Kind must be one of:
# [ PeriodicTranslate | PeriodicCellList | PeriodicGhosts | Mirror | MirrorGhosts ]
Kind = PeriodicGhosts

# Side is required for the mirror kinds and must be [ Lower | Upper ].
# Side = Lower`

// CaseConfig are the [Case] section parameters.
type CaseConfig struct {
	// Required
	Steps int
	DT    float64

	// Optional
	Output        string
	VelocityBound float64
	Seed          int64
	Jitter        float64
	LogFile       string
	ProfileFile   string
}

func (con *CaseConfig) ValidSteps() bool         { return con.Steps > 0 }
func (con *CaseConfig) ValidDT() bool            { return con.DT > 0 }
func (con *CaseConfig) ValidOutput() bool        { return con.Output != "" }
func (con *CaseConfig) ValidVelocityBound() bool { return con.VelocityBound > 0 }
func (con *CaseConfig) ValidLogFile() bool       { return con.LogFile != "" }
func (con *CaseConfig) ValidProfileFile() bool   { return con.ProfileFile != "" }

// BodyConfig are the parameters of one [Body "name"] section.
type BodyConfig struct {
	// Required
	Spacing         float64
	SmoothingLength float64
	LowerX, LowerY  float64
	UpperX, UpperY  float64

	// Optional
	RefinementLevel    int
	Kernel             string
	ParticleFile       string
	GravityX, GravityY float64
}

func (con *BodyConfig) ValidSpacing() bool         { return con.Spacing > 0 }
func (con *BodyConfig) ValidSmoothingLength() bool { return con.SmoothingLength > 0 }
func (con *BodyConfig) ValidDomain() bool {
	return con.UpperX > con.LowerX && con.UpperY > con.LowerY
}
func (con *BodyConfig) ValidKernel() bool {
	switch con.Kernel {
	case "", "WendlandC2", "CubicSpline":
		return true
	}
	return false
}
func (con *BodyConfig) ValidParticleFile() bool { return con.ParticleFile != "" }

// Domain returns the configured domain bounds.
func (con *BodyConfig) Domain() geom.Box {
	return geom.Box{
		Min: geom.Vec{X: con.LowerX, Y: con.LowerY},
		Max: geom.Vec{X: con.UpperX, Y: con.UpperY},
	}
}

// Gravity returns the configured external acceleration.
func (con *BodyConfig) Gravity() geom.Vec {
	return geom.Vec{X: con.GravityX, Y: con.GravityY}
}

// BoundaryConfig are the parameters of one [Boundary "name"] section.
type BoundaryConfig struct {
	// Required
	Body string
	Axis string
	Kind string

	// Optional (required for mirror kinds)
	Side string
}

func (con *BoundaryConfig) ValidBody() bool { return con.Body != "" }
func (con *BoundaryConfig) ValidAxis() bool {
	return con.Axis == "X" || con.Axis == "Y"
}
func (con *BoundaryConfig) ValidKind() bool {
	switch con.Kind {
	case "PeriodicTranslate", "PeriodicCellList", "PeriodicGhosts",
		"Mirror", "MirrorGhosts":
		return true
	}
	return false
}
func (con *BoundaryConfig) ValidSide() bool {
	return con.Side == "Lower" || con.Side == "Upper"
}

// NeedsSide reports whether the configured kind is bound to one side.
func (con *BoundaryConfig) NeedsSide() bool {
	return con.Kind == "Mirror" || con.Kind == "MirrorGhosts"
}

// ParsedAxis returns the configured axis; call ValidAxis first.
func (con *BoundaryConfig) ParsedAxis() geom.Axis {
	if con.Axis == "X" {
		return geom.X
	}
	return geom.Y
}

// CaseWrapper is the gcfg.ReadFileInto target for a case file.
type CaseWrapper struct {
	Case     CaseConfig
	Body     map[string]*BodyConfig
	Boundary map[string]*BoundaryConfig
}

// DefaultCaseWrapper returns a wrapper with defaults applied.
func DefaultCaseWrapper() *CaseWrapper {
	wrap := &CaseWrapper{}
	wrap.Case.VelocityBound = 0
	wrap.Case.Seed = 0
	return wrap
}
