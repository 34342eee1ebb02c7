// Package boundary implements the domain-edge policies: periodic translation,
// periodic images via grid entries or ghost particles, and mirror reflection.
//
// Every policy runs the same per-step state machine: a lower-bound scan
// followed by an upper-bound scan, as two passes that never overlap. Scans
// that only move a particle's own state are parallel over particles; scans
// that append to shared storage (grid cells, the ghost region) run
// sequentially, which is what makes the ghost region exclusively owned by
// the creation phase.
package boundary

import (
	"fmt"
	"math"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
)

// Polarity selects which side of the domain a bound-specific policy acts on.
type Polarity int

const (
	Lower Polarity = iota
	Upper
)

func (p Polarity) String() string {
	if p == Lower {
		return "lower"
	}
	return "upper"
}

// GhostCondition is the two-phase interface shared by ghost-creating
// policies: a creation phase before the neighbor build and an update phase
// after force evaluation.
type GhostCondition interface {
	CreateGhosts()
	UpdateGhosts()
}

// region carries the per-axis bookkeeping every policy needs: the body's
// domain bounds along the axis, the grid cell spacing that defines the
// trigger window, and the periodic translation.
type region struct {
	body        *body.Body
	axis        geom.Axis
	lower       float64
	upper       float64
	spacing     float64
	translation float64
}

// newPeriodicRegion derives the region for a periodic policy and rejects
// degenerate configurations up front: a translation shorter than the
// particle spacing means the bounds were never defined, and continuing
// would wrap particles onto themselves.
func newPeriodicRegion(b *body.Body, axis geom.Axis) (region, error) {
	r := region{
		body:    b,
		axis:    axis,
		lower:   geom.Component(b.Domain.Min, axis),
		upper:   geom.Component(b.Domain.Max, axis),
		spacing: b.Grid().Spacing(),
	}
	r.translation = r.upper - r.lower
	if math.Abs(r.translation) < b.Spacing {
		return region{}, fmt.Errorf(
			"boundary: periodic bounds on body %s axis %s not defined: translation %g below particle spacing %g",
			b.Name, axis, r.translation, b.Spacing)
	}
	return r, nil
}

// bound returns the domain bound for a polarity.
func (r *region) bound(p Polarity) float64 {
	if p == Lower {
		return r.lower
	}
	return r.upper
}

// inWindow reports whether a coordinate lies within one cell spacing inside
// the given bound, the trigger window for ghost synthesis.
func (r *region) inWindow(x float64, p Polarity) bool {
	if p == Lower {
		return x > r.lower && x < r.lower+r.spacing
	}
	return x < r.upper && x > r.upper-r.spacing
}

// shift returns the periodic translation toward the opposite side of the
// domain for a particle near the given bound.
func (r *region) shift(p Polarity) float64 {
	if p == Lower {
		return r.translation
	}
	return -r.translation
}
