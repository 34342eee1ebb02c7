package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"runtime/pprof"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/gcfg.v1"

	sph "github.com/Aric1996/SPHinXsys"
	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/boundary"
	"github.com/Aric1996/SPHinXsys/diag"
	"github.com/Aric1996/SPHinXsys/dynamics"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/io"
	"github.com/Aric1996/SPHinXsys/kernel"
	"github.com/Aric1996/SPHinXsys/material"
	"github.com/Aric1996/SPHinXsys/parallel"
	"github.com/Aric1996/SPHinXsys/relation"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	// The main function manages input sanitization and hands the validated
	// configuration to runMain. The code tries to fail gracefully if the
	// user provides incorrect input.

	var (
		caseStr       string
		exampleConfig string
	)
	vars := map[string]*string{
		"Case":          &caseStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&caseStr, "Case", "",
		"Configuration file describing the case to run.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file to stdout. The only "+
			"accepted argument is 'Case'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Case":
		wrap := io.DefaultCaseWrapper()
		err := gcfg.ReadFileInto(wrap, caseStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Case

		if !con.ValidSteps() {
			log.Fatal("Invalid/non-existent 'Steps' value.")
		} else if !con.ValidDT() {
			log.Fatal("Invalid/non-existent 'DT' value.")
		}
		if len(wrap.Body) == 0 {
			log.Fatal("At least one [Body \"name\"] section is required.")
		}

		for name, bcon := range wrap.Body {
			if !bcon.ValidSpacing() {
				log.Fatalf("Invalid 'Spacing' value for body '%s'.", name)
			} else if !bcon.ValidSmoothingLength() {
				log.Fatalf(
					"Invalid 'SmoothingLength' value for body '%s'.", name,
				)
			} else if !bcon.ValidDomain() {
				log.Fatalf("Invalid domain bounds for body '%s'.", name)
			} else if !bcon.ValidKernel() {
				log.Fatalf("Invalid 'Kernel' value for body '%s'.", name)
			}
		}

		for name, bcon := range wrap.Boundary {
			if !bcon.ValidBody() {
				log.Fatalf("Invalid/non-existent 'Body' value for "+
					"boundary '%s'.", name)
			} else if _, ok := wrap.Body[bcon.Body]; !ok {
				log.Fatalf("Boundary '%s' names unknown body '%s'.",
					name, bcon.Body)
			} else if !bcon.ValidAxis() {
				log.Fatalf("Invalid 'Axis' value for boundary '%s'.", name)
			} else if !bcon.ValidKind() {
				log.Fatalf("Invalid 'Kind' value for boundary '%s'.", name)
			} else if bcon.NeedsSide() && !bcon.ValidSide() {
				log.Fatalf("Boundary '%s' has kind '%s', which requires a "+
					"valid 'Side' value.", name, bcon.Kind)
			}
		}

		runMain(wrap)

	case "ExampleConfig":
		switch exampleConfig {
		case "Case":
			fmt.Println(io.ExampleCaseFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Case'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but sphcase "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO opens the log and profile files requested by the config.
func setupIO(con *io.CaseConfig) *FileGroup {
	fg := &FileGroup{}

	if con.ValidLogFile() {
		f, err := os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(f)
		fg.log = f
	}

	if con.ValidProfileFile() {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = f
	}

	return fg
}

// makeKernel builds the kernel named by the config. Defaults to WendlandC2.
func makeKernel(con *io.BodyConfig) kernel.Kernel {
	switch con.Kernel {
	case "CubicSpline":
		return kernel.NewCubicSpline(con.SmoothingLength)
	default:
		return kernel.NewWendlandC2(con.SmoothingLength)
	}
}

// makeBody builds one body from its config section, filled with either a
// lattice or a particle table.
func makeBody(name string, con *io.BodyConfig) *body.Body {
	b := body.New(
		name, con.RefinementLevel, con.Spacing, makeKernel(con), con.Domain(),
	)

	var pos []geom.Vec
	if con.ValidParticleFile() {
		var err error
		pos, err = io.ReadParticleTable(con.ParticleFile)
		if err != nil {
			log.Fatal(err.Error())
		}
	} else {
		pos = io.Lattice(con.Domain(), con.Spacing)
	}
	b.AddParticles(pos)

	return b
}

// attachBoundary builds the configured boundary condition and registers it
// with the simulation.
func attachBoundary(sim *sph.Simulation, b *body.Body, con *io.BoundaryConfig) {
	axis := con.ParsedAxis()

	side := boundary.Lower
	if con.Side == "Upper" {
		side = boundary.Upper
	}

	switch con.Kind {
	case "PeriodicTranslate":
		c, err := boundary.NewPeriodicTranslate(b, axis)
		if err != nil {
			log.Fatal(err.Error())
		}
		sim.AddPeriodicTranslate(c)
	case "PeriodicCellList":
		c, err := boundary.NewPeriodicCellList(b, axis)
		if err != nil {
			log.Fatal(err.Error())
		}
		sim.AddPeriodicCellList(c)
	case "PeriodicGhosts":
		c, err := boundary.NewPeriodicGhosts(b, axis)
		if err != nil {
			log.Fatal(err.Error())
		}
		sim.AddGhostCondition(c)
	case "Mirror":
		sim.AddMirror(boundary.NewMirror(b, axis, side))
	case "MirrorGhosts":
		sim.AddGhostCondition(boundary.NewMirrorGhosts(b, axis, side))
	default:
		panic("Impossible")
	}
}

// runMain builds the case from its validated config and advances it.
func runMain(wrap *io.CaseWrapper) {
	con := &wrap.Case
	fg := setupIO(con)
	defer fg.Close()

	sim := sph.NewSimulation()
	sim.Log(true)

	// Map iteration order is not stable, so sort the section names to keep
	// runs with the same seed identical.
	bodyNames := make([]string, 0, len(wrap.Body))
	for name := range wrap.Body {
		bodyNames = append(bodyNames, name)
	}
	sort.Strings(bodyNames)

	bodies := make(map[string]*body.Body, len(bodyNames))
	for _, name := range bodyNames {
		bcon := wrap.Body[name]
		b := makeBody(name, bcon)
		bodies[name] = b
		sim.AddBody(b, dynamics.Gravity{Acc: bcon.Gravity()})
		log.Printf("body '%s': %d particles", name, b.RealCount())
	}

	if con.Jitter > 0 {
		rng := rand.New(rand.NewSource(con.Seed))
		for _, name := range bodyNames {
			dynamics.RandomizePositions(bodies[name], rng, con.Jitter)
		}
	}

	boundaryNames := make([]string, 0, len(wrap.Boundary))
	for name := range wrap.Boundary {
		boundaryNames = append(boundaryNames, name)
	}
	sort.Strings(boundaryNames)
	for _, name := range boundaryNames {
		bcon := wrap.Boundary[name]
		attachBoundary(sim, bodies[bcon.Body], bcon)
	}

	// Every body resolves its own neighbors. With more than one body, each
	// additionally resolves contact neighbors against all the others.
	inners := make(map[string]*relation.Inner, len(bodyNames))
	for _, name := range bodyNames {
		inner := relation.NewInner(bodies[name])
		inners[name] = inner
		sim.AddRelation(inner)
	}
	for _, name := range bodyNames {
		targets := []*body.Body{}
		for _, other := range bodyNames {
			if other != name {
				targets = append(targets, bodies[other])
			}
		}
		if len(targets) > 0 {
			sim.AddRelation(relation.NewContact(bodies[name], targets...))
		}
	}

	// The force evaluation attached here diffuses a scalar concentration
	// field across each body's inner neighborhoods. It stands in for the
	// pressure and viscosity solvers of a full case.
	diffusers := make(map[string]*scalarDiffusion, len(bodyNames))
	for _, name := range bodyNames {
		d, err := newScalarDiffusion(bodies[name], inners[name])
		if err != nil {
			log.Fatal(err.Error())
		}
		diffusers[name] = d
	}
	sim.ForceEvaluation = func(dt float64) {
		for _, name := range bodyNames {
			diffusers[name].step(dt)
		}
	}

	out, err := diag.NewWriter(con.Output)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer out.Close()

	for step := 0; step < con.Steps; step++ {
		sim.Step(con.DT)

		for _, name := range bodyNames {
			rec := diag.Collect(
				sim.StepCount(), sim.Time(), bodies[name], con.VelocityBound,
			)
			if rec.BlownUp {
				log.Fatalf(
					"body '%s' exceeded the velocity bound %g at step %d",
					name, con.VelocityBound, sim.StepCount(),
				)
			}
			if err := out.Append(rec); err != nil {
				log.Fatal(err.Error())
			}
		}
	}

	log.Printf("finished %d steps, t = %g", sim.StepCount(), sim.Time())
}

// scalarDiffusion spreads a concentration species over a body's inner
// neighborhoods with a direction-biased diffusion coefficient.
type scalarDiffusion struct {
	body     *body.Body
	inner    *relation.Inner
	material *material.DirectionalDiffusion
	species  int
	delta    []float64
}

func newScalarDiffusion(b *body.Body, inner *relation.Inner) (*scalarDiffusion, error) {
	ci := b.RegisterSpecies("Concentration")
	conc := b.Species(ci)

	// Seed a concentration spike in the domain center.
	center := geom.Vec{
		X: (b.Domain.Min.X + b.Domain.Max.X) / 2,
		Y: (b.Domain.Min.Y + b.Domain.Max.Y) / 2,
	}
	for i := 0; i < b.RealCount(); i++ {
		dx, dy := b.Pos[i].X-center.X, b.Pos[i].Y-center.Y
		if dx*dx+dy*dy < b.Spacing*b.Spacing*4 {
			conc[i] = 1
		}
	}

	mat, err := material.NewDirectionalDiffusion(
		ci, ci, 1.0, 0.5, geom.Vec{X: 1, Y: 0},
	)
	if err != nil {
		return nil, err
	}

	return &scalarDiffusion{
		body:     b,
		inner:    inner,
		material: mat,
		species:  ci,
		delta:    make([]float64, b.RealCount()),
	}, nil
}

// step applies one explicit diffusion update over the inner neighborhoods.
// Ghosts carry a copy of their source's concentration, so ghost neighbors
// are read like any other.
func (d *scalarDiffusion) step(dt float64) {
	b := d.body
	conc := b.Species(d.species)

	parallel.For(b.RealCount(), func(i int) {
		sum := 0.0
		for _, n := range d.inner.Neighborhood(i).Entries() {
			// The pair coefficient is defined along the unit direction.
			r := math.Sqrt(n.Displacement.X*n.Displacement.X +
				n.Displacement.Y*n.Displacement.Y)
			cf := d.material.InterParticleDiffusionCoeff(
				r2.Scale(1/r, n.Displacement))
			sum += cf * (conc[n.Index] - conc[i]) * n.W
		}
		d.delta[i] = sum * dt
	})

	parallel.For(b.RealCount(), func(i int) {
		conc[i] += d.delta[i]
	})
}
