// Package sph drives the neighbor-search and boundary subsystem of a
// particle-based continuum-mechanics simulation: it owns the registered
// bodies, their relations, and their boundary conditions, and sequences the
// per-step passes that keep grids, ghosts, and neighborhoods consistent.
//
// Force and reaction evaluation is a collaborator, not part of this module:
// it is plugged in as a callback and consumes neighborhoods read-only.
package sph

import (
	"log"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/boundary"
	"github.com/Aric1996/SPHinXsys/dynamics"
	"github.com/Aric1996/SPHinXsys/parallel"
)

// Relation is the update capability shared by inner and contact relations.
type Relation interface {
	Update()
}

// Simulation aggregates bodies, relations, and boundary conditions and runs
// the fixed per-step sequencing. Register everything before the first Step;
// registration is not safe during a step.
type Simulation struct {
	bodies  []*body.Body
	gravity []dynamics.Gravity

	relations  []Relation
	translates []*boundary.PeriodicTranslate
	mirrors    []*boundary.Mirror
	cellLists  []*boundary.PeriodicCellList
	ghosts     []boundary.GhostCondition

	// ForceEvaluation, when set, is called between the neighbor build and
	// the ghost update phase with the step's dt.
	ForceEvaluation func(dt float64)

	step    int
	elapsed float64
	verbose bool
}

// NewSimulation returns an empty simulation.
func NewSimulation() *Simulation {
	return &Simulation{}
}

// Log enables per-step progress logging.
func (s *Simulation) Log(flag bool) {
	s.verbose = flag
	if flag {
		log.Printf("simulation workers: %d", parallel.NumWorkers())
	}
}

// AddBody registers a body and its external acceleration field.
func (s *Simulation) AddBody(b *body.Body, g dynamics.Gravity) {
	s.bodies = append(s.bodies, b)
	s.gravity = append(s.gravity, g)
}

// AddRelation registers an inner or contact relation for per-step rebuild.
func (s *Simulation) AddRelation(r Relation) {
	s.relations = append(s.relations, r)
}

// AddPeriodicTranslate registers a position-wrapping periodic condition.
func (s *Simulation) AddPeriodicTranslate(c *boundary.PeriodicTranslate) {
	s.translates = append(s.translates, c)
}

// AddMirror registers a reflecting wall condition.
func (s *Simulation) AddMirror(c *boundary.Mirror) {
	s.mirrors = append(s.mirrors, c)
}

// AddPeriodicCellList registers a grid-only periodic image condition.
func (s *Simulation) AddPeriodicCellList(c *boundary.PeriodicCellList) {
	s.cellLists = append(s.cellLists, c)
}

// AddGhostCondition registers a two-phase ghost condition (periodic or
// mirror).
func (s *Simulation) AddGhostCondition(c boundary.GhostCondition) {
	s.ghosts = append(s.ghosts, c)
}

// StepCount returns the number of completed steps.
func (s *Simulation) StepCount() int { return s.step }

// Time returns the accumulated simulated time.
func (s *Simulation) Time() float64 { return s.elapsed }

// Bodies returns the registered bodies in registration order.
func (s *Simulation) Bodies() []*body.Body { return s.bodies }

// Step advances one time step. The pass order is fixed:
//
//  1. begin-step setup: ghost counts reset, external acceleration filled;
//  2. position-only boundary passes (periodic wrap, mirror reflection), so
//     every real particle is back inside its domain before indexing;
//  3. grid rebuild from current positions, one pass per body;
//  4. boundary image passes against the fresh grid (cell-list images, ghost
//     creation);
//  5. neighbor rebuild for every registered relation;
//  6. force/reaction evaluation (external callback);
//  7. ghost update phase, refreshing ghost state from source particles.
//
// Each pass completes before the next begins, which is the only
// synchronization the shared grid and ghost storage need.
func (s *Simulation) Step(dt float64) {
	s.beginStep()

	for _, c := range s.translates {
		c.Apply()
	}
	for _, c := range s.mirrors {
		c.Apply()
	}

	for _, b := range s.bodies {
		b.UpdateCellLinkedList()
	}

	for _, c := range s.cellLists {
		c.Apply()
	}
	for _, c := range s.ghosts {
		c.CreateGhosts()
	}

	for _, r := range s.relations {
		r.Update()
	}

	if s.ForceEvaluation != nil {
		s.ForceEvaluation(dt)
	}

	for _, c := range s.ghosts {
		c.UpdateGhosts()
	}

	s.step++
	s.elapsed += dt

	if s.verbose {
		log.Printf("step %d done, t = %g", s.step, s.elapsed)
	}
}

// beginStep invalidates last step's ghosts and stores the external
// acceleration for every real particle.
func (s *Simulation) beginStep() {
	for bi, b := range s.bodies {
		b.ClearGhosts()
		g := s.gravity[bi]
		parallel.For(b.RealCount(), func(i int) {
			b.AccOthers[i] = g.InducedAcceleration(b.Pos[i])
		})
	}
}
