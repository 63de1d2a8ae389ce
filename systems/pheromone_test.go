package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/formica/geom"
)

// testGrid is a 10x10 grid of 4px cells with nests in opposite corners,
// sitting exactly on cell corners so refresh pinning is exact.
func testGrid() *PheromoneGrid {
	g := NewPheromoneGrid(10, 10, 4, 1.0)
	g.Reset(geom.V(4, 4), geom.V(32, 32))
	return g
}

// openArea covers the whole test grid: no margin, no sky.
var openArea = Bounds{MinX: 0, MaxX: 100, SurfaceY: 0, MaxY: 100}

func TestResetPinsNestCells(t *testing.T) {
	g := testGrid()

	if v := g.Get(geom.V(4, 4), ChanHomeA); v != 1.0 {
		t.Errorf("nest A home cell = %v, want 1", v)
	}
	if v := g.Get(geom.V(32, 32), ChanHomeB); v != 1.0 {
		t.Errorf("nest B home cell = %v, want 1", v)
	}

	// Everything else starts at zero.
	if v := g.Get(geom.V(20, 20), ChanHomeA); v != 0 {
		t.Errorf("non-nest cell = %v, want 0", v)
	}
	if v := g.Get(geom.V(4, 4), ChanFoodA); v != 0 {
		t.Errorf("food channel at nest = %v, want 0", v)
	}
}

func TestEvaporateIsDeterministic(t *testing.T) {
	g := testGrid()
	pos := geom.V(20, 20)
	g.Set(pos, ChanHomeA, 1.0)
	g.Set(pos, ChanFoodA, 1.0)

	const rate = float32(0.9)
	const n = 5

	for i := 0; i < n; i++ {
		g.Evaporate(rate, rate, openArea)
	}

	// Expected values computed with the same float32 multiplications.
	expHome := float32(1.0)
	expFood := float32(1.0)
	for i := 0; i < n; i++ {
		expHome *= rate
		expFood *= rate - 0.01
	}

	if got := g.Get(pos, ChanHomeA); math.Abs(float64(got-expHome)) > 1e-6 {
		t.Errorf("home after %d evaporations = %v, want %v", n, got, expHome)
	}
	if got := g.Get(pos, ChanFoodA); math.Abs(float64(got-expFood)) > 1e-6 {
		t.Errorf("food after %d evaporations = %v, want %v", n, got, expFood)
	}
	if g.Get(pos, ChanFoodA) >= g.Get(pos, ChanHomeA) {
		t.Error("food scent should decay faster than home scent")
	}
}

func TestEvaporateZeroStaysZero(t *testing.T) {
	g := testGrid()
	pos := geom.V(20, 20)

	g.Evaporate(0.995, 0.995, openArea)

	for ch := 0; ch < NumChannels; ch++ {
		if got := g.Get(pos, ch); got != 0 {
			t.Errorf("channel %d = %v after evaporating an empty cell, want 0", ch, got)
		}
	}
}

func TestEvaporateFoodRateFloorsAtZero(t *testing.T) {
	g := testGrid()
	pos := geom.V(20, 20)
	g.Set(pos, ChanFoodA, 1.0)

	// Rate below the food offset: food multiplier clamps to 0, not negative.
	g.Evaporate(0.005, 0.005, openArea)

	if got := g.Get(pos, ChanFoodA); got != 0 {
		t.Errorf("food with sub-offset rate = %v, want 0", got)
	}
}

func TestEvaporateSkipsSkyAndMargins(t *testing.T) {
	g := testGrid()

	sky := geom.V(20, 4)     // above the surface line
	margin := geom.V(4, 20)  // left of the playable area
	active := geom.V(20, 20) // inside

	g.Set(sky, ChanHomeA, 0.8)
	g.Set(margin, ChanHomeA, 0.8)
	g.Set(active, ChanHomeA, 0.8)

	area := Bounds{MinX: 8, MaxX: 100, SurfaceY: 8, MaxY: 100}
	g.Evaporate(0.5, 0.5, area)

	if got := g.Get(sky, ChanHomeA); got != 0.8 {
		t.Errorf("sky cell decayed to %v, want untouched 0.8", got)
	}
	if got := g.Get(margin, ChanHomeA); got != 0.8 {
		t.Errorf("margin cell decayed to %v, want untouched 0.8", got)
	}
	if got := g.Get(active, ChanHomeA); got != 0.4 {
		t.Errorf("active cell = %v, want 0.4", got)
	}
}

func TestEvaporateRefreshesNestBeacon(t *testing.T) {
	g := testGrid()

	for i := 0; i < 100; i++ {
		g.Evaporate(0.5, 0.5, openArea)
	}

	if v := g.Get(geom.V(4, 4), ChanHomeA); v != 1.0 {
		t.Errorf("nest A beacon faded to %v, want 1", v)
	}
	if v := g.Get(geom.V(32, 32), ChanHomeB); v != 1.0 {
		t.Errorf("nest B beacon faded to %v, want 1", v)
	}
}

func TestAddClampsToOne(t *testing.T) {
	g := testGrid()
	pos := geom.V(20, 20)

	for i := 0; i < 10; i++ {
		g.Add(pos, ChanFoodA, 0.3)
	}
	if got := g.Get(pos, ChanFoodA); got != 1.0 {
		t.Errorf("accumulated value = %v, want clamped 1", got)
	}

	g.Add(pos, ChanFoodA, -5)
	if got := g.Get(pos, ChanFoodA); got != 0 {
		t.Errorf("after large negative add = %v, want clamped 0", got)
	}
}

func TestSetClamps(t *testing.T) {
	g := testGrid()
	pos := geom.V(20, 20)

	g.Set(pos, ChanHomeA, 2.5)
	if got := g.Get(pos, ChanHomeA); got != 1.0 {
		t.Errorf("Set above 1 = %v, want 1", got)
	}
	g.Set(pos, ChanHomeA, -0.5)
	if got := g.Get(pos, ChanHomeA); got != 0 {
		t.Errorf("Set below 0 = %v, want 0", got)
	}
}

func TestOutOfBoundsAccess(t *testing.T) {
	g := testGrid()

	outside := []geom.Vec2{
		{X: -1, Y: 20},
		{X: 20, Y: -1},
		{X: 40, Y: 20},
		{X: 20, Y: 40},
		{X: -0.5, Y: 8}, // slightly negative must not alias into column 0
	}

	for _, pos := range outside {
		if got := g.Get(pos, ChanHomeA); got != 0 {
			t.Errorf("Get(%v) = %v, want 0", pos, got)
		}
		g.Set(pos, ChanHomeA, 1.0)
		g.Add(pos, ChanHomeA, 1.0)
	}

	// The writes above must not have touched any real cell.
	if got := g.CellValue(0, 2, ChanHomeA); got != 0 {
		t.Errorf("cell (0,2) = %v after out-of-bounds writes, want 0", got)
	}
}

func TestCellValueOutOfBounds(t *testing.T) {
	g := testGrid()
	if got := g.CellValue(-1, 0, ChanHomeA); got != 0 {
		t.Errorf("CellValue(-1,0) = %v, want 0", got)
	}
	if got := g.CellValue(10, 0, ChanHomeA); got != 0 {
		t.Errorf("CellValue(10,0) = %v, want 0", got)
	}
}
