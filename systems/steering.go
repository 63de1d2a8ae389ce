package systems

import (
	"math/rand"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/geom"
)

// Bounds describes the playable underground area. MinX/MaxX are the
// lateral walls, SurfaceY the soil line agents cannot rise above, MaxY the
// world bottom. Pad keeps entities off the exact wall pixels.
type Bounds struct {
	MinX     float32
	MaxX     float32
	SurfaceY float32
	MaxY     float32
	Pad      float32
}

// SteerParams bundles the locomotion limits shared by all agents.
type SteerParams struct {
	MaxSpeed      float32
	MaxForce      float32
	SensorDist    float32
	SensorAngle   float32 // lateral sensor offset, radians
	WanderImpulse float32
}

// ApplySteering accumulates a Reynolds steering force toward the desired
// direction: normalize to max speed, correct against current velocity,
// clamp to max force.
func ApplySteering(m *components.Motion, desired geom.Vec2, p SteerParams) {
	want := desired.Normalize().Scale(p.MaxSpeed)
	steer := want.Sub(m.Vel).Limit(p.MaxForce)
	m.Acc = m.Acc.Add(steer)
}

// MoveForward steers toward the current heading, reinforcing it.
func MoveForward(m *components.Motion, p SteerParams) {
	ApplySteering(m, m.Vel, p)
}

// Turn steers toward the current heading rotated by angle radians.
func Turn(m *components.Motion, angle float32, p SteerParams) {
	ApplySteering(m, m.Vel.Rotate(angle), p)
}

// Seek steers toward a world-space target.
func Seek(m *components.Motion, target geom.Vec2, p SteerParams) {
	ApplySteering(m, target.Sub(m.Pos), p)
}

// Wander adds a small random impulse, bypassing the steering clamp.
// Models exploratory jitter.
func Wander(m *components.Motion, rng *rand.Rand, p SteerParams) {
	m.Acc = m.Acc.Add(geom.RandomDir(rng).Scale(p.WanderImpulse))
}

// Integrate advances the motion one tick with semi-implicit Euler:
// velocity absorbs the accumulated acceleration, is clamped to max speed,
// moves the position, and the accumulator is cleared.
func Integrate(m *components.Motion, p SteerParams) {
	m.Vel = m.Vel.Add(m.Acc).Limit(p.MaxSpeed)
	m.Pos = m.Pos.Add(m.Vel)
	m.Acc = geom.Vec2{}
}

// SensorPosition returns the world position of a scent sensor offset from
// the agent along its heading rotated by angle. Three sensors are used:
// front (0), left (-SensorAngle), right (+SensorAngle).
func SensorPosition(m *components.Motion, angle float32, p SteerParams) geom.Vec2 {
	return m.Vel.Rotate(angle).Normalize().Scale(p.SensorDist).Add(m.Pos)
}

// ClampToBounds reflects the velocity component perpendicular to any
// boundary the agent crossed, then constrains the position inside the
// playable area.
func ClampToBounds(m *components.Motion, b Bounds) {
	if m.Pos.X < b.MinX+b.Pad || m.Pos.X > b.MaxX-b.Pad {
		m.Vel.X *= -1
	}
	if m.Pos.Y > b.MaxY-b.Pad {
		m.Vel.Y *= -1
	}
	if m.Pos.Y < b.SurfaceY {
		m.Pos.Y = b.SurfaceY
		m.Vel.Y *= -1
	}

	m.Pos.X = clampf(m.Pos.X, b.MinX+b.Pad, b.MaxX-b.Pad)
	m.Pos.Y = clampf(m.Pos.Y, b.SurfaceY, b.MaxY-b.Pad)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
