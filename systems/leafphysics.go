package systems

import (
	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/geom"
)

// LeafParams holds the physical constants for falling leaves. Mass, drag
// coefficient, frontal area, and wind are SI units; PixelsPerMeter maps
// the SI world onto screen space.
type LeafParams struct {
	PixelsPerMeter float32
	Gravity        float32 // m/s^2
	AirDensity     float32 // kg/m^3
	Mass           float32 // kg
	DragCoeff      float32
	FrontalArea    float32   // m^2
	Wind           geom.Vec2 // m/s
	WallBounce     float32   // horizontal damping factor on wall contact
}

// minDragSpeed avoids drag precision noise at near-zero relative velocity.
const minDragSpeed = 1e-5

// UpdateLeaf advances one leaf by dt seconds of Newtonian physics:
// gravity plus quadratic air drag against the wind, semi-implicit Euler
// integration, damped wall bounces, and a hard stop at the ground line.
// A non-positive dt leaves the state untouched. A grounded leaf stays
// pinned with zero velocity on every later call.
func UpdateLeaf(m *components.Motion, dt float32, groundY, minX, maxX float32, p LeafParams) {
	if dt <= 0 {
		return
	}

	// Already landed: freeze the body. Pickup and deposit checks run
	// elsewhere and rely on the pinned position.
	if m.Pos.Y >= groundY {
		m.Pos.Y = groundY
		m.Vel = geom.Vec2{}
		m.Acc = geom.Vec2{}
		return
	}

	m.Acc = geom.Vec2{}

	// Gravity, converted to px/s^2. +Y is down.
	m.Acc.Y += p.Gravity * p.PixelsPerMeter

	// Quadratic drag: Fd = 0.5 * rho * Cd * A * |vRel|^2, opposing the
	// velocity relative to the wind.
	vMs := m.Vel.Scale(1.0 / p.PixelsPerMeter)
	vRel := vMs.Sub(p.Wind)
	speed := vRel.Mag()
	if speed > minDragSpeed {
		dragMag := 0.5 * p.AirDensity * p.DragCoeff * p.FrontalArea * speed * speed
		drag := vRel.Normalize().Scale(-dragMag)          // newtons
		m.Acc = m.Acc.Add(drag.Scale(p.PixelsPerMeter / p.Mass)) // px/s^2
	}

	// Semi-implicit Euler.
	m.Vel = m.Vel.Add(m.Acc.Scale(dt))
	m.Pos = m.Pos.Add(m.Vel.Scale(dt))

	// Lateral walls: clamp and reverse the horizontal component, damped.
	if m.Pos.X < minX {
		m.Pos.X = minX
		m.Vel.X *= -p.WallBounce
	} else if m.Pos.X > maxX {
		m.Pos.X = maxX
		m.Vel.X *= -p.WallBounce
	}

	// Ground contact.
	if m.Pos.Y >= groundY {
		m.Pos.Y = groundY
		m.Vel = geom.Vec2{}
	}
}
