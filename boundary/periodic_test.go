package boundary

import (
	"math"
	"testing"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/geom"
	"github.com/Aric1996/SPHinXsys/kernel"
)

// periodicBody has a [0, 10]^2 domain with a one-unit trigger window: the
// kernel cutoff, and so the grid spacing, is 1.
func periodicBody(pos ...geom.Vec) *body.Body {
	domain := geom.Box{Min: geom.Vec{X: 0, Y: 0}, Max: geom.Vec{X: 10, Y: 10}}
	b := body.New("test", 0, 1.0, kernel.NewWendlandC2(0.5), domain)
	b.AddParticles(pos)
	return b
}

func TestPeriodicTranslateWraps(t *testing.T) {
	table := []struct {
		pos, want float64
	}{
		{10.3, 0.3},
		{-0.2, 9.8},
		{5.0, 5.0},
		{9.7, 9.7},
		{0.0, 0.0},
	}

	for i, test := range table {
		b := periodicBody(geom.Vec{X: test.pos, Y: 5})
		c, err := NewPeriodicTranslate(b, geom.X)
		if err != nil {
			t.Fatal(err.Error())
		}

		c.Apply()
		if got := b.Pos[0].X; math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%d) x = %g wrapped to %g, not %g",
				i+1, test.pos, got, test.want)
		}
		if b.Pos[0].Y != 5 {
			t.Errorf("%d) wrap on x moved y to %g", i+1, b.Pos[0].Y)
		}

		// A wrapped particle no longer satisfies either trigger, so a
		// second pass is a no-op.
		wrapped := b.Pos[0].X
		c.Apply()
		if b.Pos[0].X != wrapped {
			t.Errorf("%d) second wrap moved x from %g to %g",
				i+1, wrapped, b.Pos[0].X)
		}
	}
}

func TestPeriodicRejectsNarrowDomain(t *testing.T) {
	domain := geom.Box{Min: geom.Vec{X: 0, Y: 0}, Max: geom.Vec{X: 0.5, Y: 10}}
	b := body.New("narrow", 0, 1.0, kernel.NewWendlandC2(0.5), domain)

	if _, err := NewPeriodicTranslate(b, geom.X); err == nil {
		t.Errorf("translate accepted a domain narrower than the spacing")
	}
	if _, err := NewPeriodicCellList(b, geom.X); err == nil {
		t.Errorf("cell list accepted a domain narrower than the spacing")
	}
	if _, err := NewPeriodicGhosts(b, geom.X); err == nil {
		t.Errorf("ghosts accepted a domain narrower than the spacing")
	}

	// The same domain is fine on its long axis.
	if _, err := NewPeriodicTranslate(b, geom.Y); err != nil {
		t.Errorf("translate rejected a valid axis: %s", err.Error())
	}
}

func TestPeriodicCellListInsertsImages(t *testing.T) {
	b := periodicBody(
		geom.Vec{X: 9.7, Y: 5}, // upper window
		geom.Vec{X: 0.3, Y: 5}, // lower window
		geom.Vec{X: 5.0, Y: 5}, // interior
	)
	b.UpdateCellLinkedList()

	c, err := NewPeriodicCellList(b, geom.X)
	if err != nil {
		t.Fatal(err.Error())
	}
	c.Apply()

	// No particle state was duplicated.
	if b.GhostCount() != 0 {
		t.Errorf("cell list created %d ghosts", b.GhostCount())
	}

	grid := b.Grid()
	wantImages := map[int]geom.Vec{
		0: {X: -0.3, Y: 5},
		1: {X: 10.3, Y: 5},
	}
	for index, pos := range wantImages {
		cx, cy := grid.CellIndex(pos)
		found := false
		for _, e := range grid.Cell(cx, cy) {
			if e.Index == index && e.Pos == pos {
				found = true
			}
		}
		if !found {
			t.Errorf("no image entry for particle %d at %v", index, pos)
		}
	}
}

func TestPeriodicGhostsCreate(t *testing.T) {
	b := periodicBody(
		geom.Vec{X: 9.7, Y: 5}, // upper window: ghost at -0.3
		geom.Vec{X: 0.3, Y: 5}, // lower window: ghost at 10.3
		geom.Vec{X: 5.0, Y: 5}, // interior: no ghost
		geom.Vec{X: 9.0, Y: 5}, // on the window edge: excluded
	)
	b.UpdateCellLinkedList()

	c, err := NewPeriodicGhosts(b, geom.X)
	if err != nil {
		t.Fatal(err.Error())
	}
	c.CreateGhosts()

	if b.GhostCount() != 2 {
		t.Fatalf("created %d ghosts, not 2", b.GhostCount())
	}

	lower, upper := c.Ghosts(Lower), c.Ghosts(Upper)
	if len(lower) != 1 || len(upper) != 1 {
		t.Fatalf("ghost lists have %d and %d entries, not 1 and 1",
			len(lower), len(upper))
	}

	gl, gu := lower[0], upper[0]
	if b.GhostSource(gl) != 1 {
		t.Errorf("lower ghost sourced from %d, not 1", b.GhostSource(gl))
	}
	if b.GhostSource(gu) != 0 {
		t.Errorf("upper ghost sourced from %d, not 0", b.GhostSource(gu))
	}
	if math.Abs(b.Pos[gl].X-10.3) > 1e-12 {
		t.Errorf("lower-window ghost at x = %g, not 10.3", b.Pos[gl].X)
	}
	if math.Abs(b.Pos[gu].X+0.3) > 1e-12 {
		t.Errorf("upper-window ghost at x = %g, not -0.3", b.Pos[gu].X)
	}

	// Ghosts are indexed into the grid at their translated positions.
	grid := b.Grid()
	cx, cy := grid.CellIndex(b.Pos[gu])
	found := false
	for _, e := range grid.Cell(cx, cy) {
		if e.Index == gu {
			found = true
		}
	}
	if !found {
		t.Errorf("upper-window ghost missing from the grid")
	}
}

func TestPeriodicGhostsUpdateFollowsSource(t *testing.T) {
	b := periodicBody(geom.Vec{X: 9.7, Y: 5})
	b.UpdateCellLinkedList()

	c, err := NewPeriodicGhosts(b, geom.X)
	if err != nil {
		t.Fatal(err.Error())
	}
	c.CreateGhosts()
	ghost := c.Ghosts(Upper)[0]

	// The force evaluation moves the source.
	b.Pos[0] = geom.Vec{X: 9.8, Y: 5.1}
	b.Vel[0] = geom.Vec{X: 2, Y: -1}
	c.UpdateGhosts()

	if math.Abs(b.Pos[ghost].X+0.2) > 1e-12 || b.Pos[ghost].Y != 5.1 {
		t.Errorf("updated ghost at %v, not (-0.2, 5.1)", b.Pos[ghost])
	}
	if b.Vel[ghost] != b.Vel[0] {
		t.Errorf("updated ghost velocity %v, source has %v",
			b.Vel[ghost], b.Vel[0])
	}
}

// A new step's creation phase drops last step's ghosts and reuses their
// storage.
func TestPeriodicGhostsRecreate(t *testing.T) {
	b := periodicBody(geom.Vec{X: 9.7, Y: 5}, geom.Vec{X: 0.3, Y: 5})
	b.UpdateCellLinkedList()

	c, err := NewPeriodicGhosts(b, geom.X)
	if err != nil {
		t.Fatal(err.Error())
	}
	c.CreateGhosts()
	stored := len(b.Pos)

	b.ClearGhosts()
	b.UpdateCellLinkedList()
	c.CreateGhosts()

	if b.GhostCount() != 2 {
		t.Errorf("re-creation made %d ghosts, not 2", b.GhostCount())
	}
	if len(b.Pos) != stored {
		t.Errorf("re-creation grew storage from %d to %d", stored, len(b.Pos))
	}
}
