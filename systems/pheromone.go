// Package systems provides the algorithmic core of the simulation: the
// pheromone field, steering physics, agent behavior, and leaf physics.
package systems

import (
	"math"

	"github.com/pthm-cable/formica/geom"
)

// Channels in the pheromone grid. Each cell stores four independent
// scalar intensities in [0,1].
const (
	ChanHomeA = 0
	ChanFoodA = 1
	ChanHomeB = 2
	ChanFoodB = 3

	NumChannels = 4
)

// foodDecayOffset makes food scent evaporate faster than home scent.
const foodDecayOffset = 0.01

// PheromoneGrid is a dense 2D grid of pheromone intensities shared by all
// agents. World coordinates map to cells by flooring against Resolution.
// Out-of-grid reads return 0; out-of-grid writes are no-ops.
type PheromoneGrid struct {
	Cols       int
	Rows       int
	Resolution int

	vals []float32 // len = Cols*Rows*NumChannels, row-major, channel-minor

	nests       [2]geom.Vec2
	nestRefresh float32 // radius kept pinned to 1.0 around each nest
}

// NewPheromoneGrid creates a grid of cols x rows cells of the given pixel
// resolution. nestRefresh is the world-space radius around each nest that
// evaporation keeps saturated on the colony's home channel.
func NewPheromoneGrid(cols, rows, resolution int, nestRefresh float32) *PheromoneGrid {
	return &PheromoneGrid{
		Cols:        cols,
		Rows:        rows,
		Resolution:  resolution,
		vals:        make([]float32, cols*rows*NumChannels),
		nestRefresh: nestRefresh,
	}
}

// Reset zeroes every channel and pins the cell containing each nest to 1.0
// on that colony's home channel.
func (f *PheromoneGrid) Reset(nestA, nestB geom.Vec2) {
	for i := range f.vals {
		f.vals[i] = 0
	}
	f.nests[0] = nestA
	f.nests[1] = nestB
	f.Set(nestA, ChanHomeA, 1.0)
	f.Set(nestB, ChanHomeB, 1.0)
}

// Evaporate multiplies every cell inside the active area by the colony
// evaporation rates. Food channels decay faster than home channels by a
// fixed offset. Cells within the nest refresh radius are re-pinned to 1.0
// on their colony's home channel so the beacon never fades.
func (f *PheromoneGrid) Evaporate(rateA, rateB float32, area Bounds) {
	foodA := rateA - foodDecayOffset
	if foodA < 0 {
		foodA = 0
	}
	foodB := rateB - foodDecayOffset
	if foodB < 0 {
		foodB = 0
	}

	refreshSq := f.nestRefresh * f.nestRefresh

	for x := 0; x < f.Cols; x++ {
		wx := float32(x * f.Resolution)
		// Columns outside the playable area never receive deposits.
		if wx < area.MinX || wx > area.MaxX {
			continue
		}

		for y := 0; y < f.Rows; y++ {
			wy := float32(y * f.Resolution)
			// The sky holds no scent.
			if wy < area.SurfaceY {
				continue
			}

			i := f.cellIndex(x, y)
			f.vals[i+ChanHomeA] *= rateA
			f.vals[i+ChanFoodA] *= foodA
			f.vals[i+ChanHomeB] *= rateB
			f.vals[i+ChanFoodB] *= foodB

			cell := geom.V(wx, wy)
			if cell.Sub(f.nests[0]).MagSq() < refreshSq {
				f.vals[i+ChanHomeA] = 1.0
			}
			if cell.Sub(f.nests[1]).MagSq() < refreshSq {
				f.vals[i+ChanHomeB] = 1.0
			}
		}
	}
}

// Get returns the intensity at a world position, or 0 out of bounds.
func (f *PheromoneGrid) Get(pos geom.Vec2, channel int) float32 {
	x, y := f.cellCoords(pos)
	if !f.inBounds(x, y) {
		return 0
	}
	return f.vals[f.cellIndex(x, y)+channel]
}

// Set stores a clamped intensity at a world position. No-op out of bounds.
func (f *PheromoneGrid) Set(pos geom.Vec2, channel int, v float32) {
	x, y := f.cellCoords(pos)
	if !f.inBounds(x, y) {
		return
	}
	f.vals[f.cellIndex(x, y)+channel] = clamp01(v)
}

// Add accumulates delta into a cell, clamping the sum to [0,1]. No-op out
// of bounds.
func (f *PheromoneGrid) Add(pos geom.Vec2, channel int, delta float32) {
	x, y := f.cellCoords(pos)
	if !f.inBounds(x, y) {
		return
	}
	i := f.cellIndex(x, y) + channel
	f.vals[i] = clamp01(f.vals[i] + delta)
}

// CellValue returns the intensity of a cell by grid coordinates, for
// heat-map rendering. Returns 0 out of bounds.
func (f *PheromoneGrid) CellValue(x, y, channel int) float32 {
	if !f.inBounds(x, y) {
		return 0
	}
	return f.vals[f.cellIndex(x, y)+channel]
}

// cellCoords floors world coordinates into grid cells so that negative
// positions land out of bounds instead of aliasing into column/row zero.
func (f *PheromoneGrid) cellCoords(pos geom.Vec2) (int, int) {
	x := int(math.Floor(float64(pos.X) / float64(f.Resolution)))
	y := int(math.Floor(float64(pos.Y) / float64(f.Resolution)))
	return x, y
}

func (f *PheromoneGrid) cellIndex(x, y int) int {
	return (y*f.Cols + x) * NumChannels
}

func (f *PheromoneGrid) inBounds(x, y int) bool {
	return x >= 0 && x < f.Cols && y >= 0 && y < f.Rows
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
