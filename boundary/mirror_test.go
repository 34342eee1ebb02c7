package boundary

import (
	"math"
	"testing"

	"github.com/Aric1996/SPHinXsys/geom"
)

func TestMirrorReflects(t *testing.T) {
	table := []struct {
		polarity Polarity
		pos      geom.Vec
		vel      geom.Vec
		wantPos  geom.Vec
		wantVel  geom.Vec
	}{
		{
			Lower,
			geom.Vec{X: -0.2, Y: 5}, geom.Vec{X: -1, Y: 2},
			geom.Vec{X: 0.2, Y: 5}, geom.Vec{X: 1, Y: 2},
		},
		{
			Upper,
			geom.Vec{X: 10.3, Y: 5}, geom.Vec{X: 3, Y: -1},
			geom.Vec{X: 9.7, Y: 5}, geom.Vec{X: -3, Y: -1},
		},
		// Interior particles are untouched.
		{
			Lower,
			geom.Vec{X: 5, Y: 5}, geom.Vec{X: -1, Y: 0},
			geom.Vec{X: 5, Y: 5}, geom.Vec{X: -1, Y: 0},
		},
		{
			Upper,
			geom.Vec{X: 5, Y: 5}, geom.Vec{X: 3, Y: 0},
			geom.Vec{X: 5, Y: 5}, geom.Vec{X: 3, Y: 0},
		},
	}

	for i, test := range table {
		b := periodicBody(test.pos)
		b.Vel[0] = test.vel

		NewMirror(b, geom.X, test.polarity).Apply()

		if !vecAlmostEq(b.Pos[0], test.wantPos) {
			t.Errorf("%d) reflected position %v, not %v",
				i+1, b.Pos[0], test.wantPos)
		}
		if !vecAlmostEq(b.Vel[0], test.wantVel) {
			t.Errorf("%d) reflected velocity %v, not %v",
				i+1, b.Vel[0], test.wantVel)
		}
	}
}

func vecAlmostEq(a, b geom.Vec) bool {
	return math.Abs(a.X-b.X) <= 1e-12 && math.Abs(a.Y-b.Y) <= 1e-12
}

func TestMirrorOnYAxis(t *testing.T) {
	b := periodicBody(geom.Vec{X: 5, Y: -0.4})
	b.Vel[0] = geom.Vec{X: 2, Y: -3}

	NewMirror(b, geom.Y, Lower).Apply()

	if !vecAlmostEq(b.Pos[0], geom.Vec{X: 5, Y: 0.4}) {
		t.Errorf("reflected position %v, not (5, 0.4)", b.Pos[0])
	}
	if !vecAlmostEq(b.Vel[0], geom.Vec{X: 2, Y: 3}) {
		t.Errorf("reflected velocity %v, not (2, 3)", b.Vel[0])
	}
}

func TestMirrorGhostsCreate(t *testing.T) {
	b := periodicBody(
		geom.Vec{X: 0.4, Y: 5}, // in the lower window: ghost at -0.4
		geom.Vec{X: 5.0, Y: 5}, // interior: no ghost
	)
	b.Vel[0] = geom.Vec{X: 1, Y: 2}
	b.UpdateCellLinkedList()

	c := NewMirrorGhosts(b, geom.X, Lower)
	c.CreateGhosts()

	if b.GhostCount() != 1 {
		t.Fatalf("created %d ghosts, not 1", b.GhostCount())
	}
	ghost := c.Ghosts()[0]

	if b.GhostSource(ghost) != 0 {
		t.Errorf("ghost sourced from %d, not 0", b.GhostSource(ghost))
	}
	if !vecAlmostEq(b.Pos[ghost], geom.Vec{X: -0.4, Y: 5}) {
		t.Errorf("ghost at %v, not (-0.4, 5)", b.Pos[ghost])
	}
	if !vecAlmostEq(b.Vel[ghost], geom.Vec{X: -1, Y: 2}) {
		t.Errorf("ghost velocity %v, not (-1, 2)", b.Vel[ghost])
	}

	grid := b.Grid()
	cx, cy := grid.CellIndex(b.Pos[ghost])
	found := false
	for _, e := range grid.Cell(cx, cy) {
		if e.Index == ghost {
			found = true
		}
	}
	if !found {
		t.Errorf("ghost missing from the grid")
	}
}

func TestMirrorGhostsUpdateFollowsSource(t *testing.T) {
	b := periodicBody(geom.Vec{X: 0.4, Y: 5})
	b.UpdateCellLinkedList()

	c := NewMirrorGhosts(b, geom.X, Lower)
	c.CreateGhosts()
	ghost := c.Ghosts()[0]

	b.Pos[0] = geom.Vec{X: 0.3, Y: 5.2}
	b.Vel[0] = geom.Vec{X: -2, Y: 1}
	c.UpdateGhosts()

	if !vecAlmostEq(b.Pos[ghost], geom.Vec{X: -0.3, Y: 5.2}) {
		t.Errorf("updated ghost at %v, not (-0.3, 5.2)", b.Pos[ghost])
	}
	if !vecAlmostEq(b.Vel[ghost], geom.Vec{X: 2, Y: 1}) {
		t.Errorf("updated ghost velocity %v, not (2, 1)", b.Vel[ghost])
	}
}

func TestMirrorGhostsWindowExcludesBound(t *testing.T) {
	// Exactly on the wall or one full spacing inside: no ghost either way.
	b := periodicBody(geom.Vec{X: 0, Y: 5}, geom.Vec{X: 1.0, Y: 5})
	b.UpdateCellLinkedList()

	c := NewMirrorGhosts(b, geom.X, Lower)
	c.CreateGhosts()

	if b.GhostCount() != 0 {
		t.Errorf("window edges produced %d ghosts", b.GhostCount())
	}
}
