package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/geom"
)

var testSteer = SteerParams{
	MaxSpeed:      2.0,
	MaxForce:      0.2,
	SensorDist:    30,
	SensorAngle:   float32(math.Pi / 3),
	WanderImpulse: 0.2,
}

func TestApplySteeringClampsForce(t *testing.T) {
	m := &components.Motion{}
	ApplySteering(m, geom.V(100, 0), testSteer)

	// From rest the raw correction is maxSpeed, so it must be clamped.
	if got := m.Acc.Mag(); math.Abs(float64(got-testSteer.MaxForce)) > 1e-5 {
		t.Errorf("steering force = %v, want clamped to %v", got, testSteer.MaxForce)
	}
	if m.Acc.X <= 0 || m.Acc.Y != 0 {
		t.Errorf("steering direction = %v, want +X", m.Acc)
	}
}

func TestApplySteeringZeroDesiredBrakes(t *testing.T) {
	m := &components.Motion{Vel: geom.V(2, 0)}
	ApplySteering(m, geom.Vec2{}, testSteer)

	// Zero desired normalizes to zero: the correction opposes velocity.
	if m.Acc.X >= 0 {
		t.Errorf("braking force = %v, want -X", m.Acc)
	}
}

func TestMoveForwardKeepsHeading(t *testing.T) {
	m := &components.Motion{Vel: geom.V(1, 0)}
	MoveForward(m, testSteer)
	Integrate(m, testSteer)

	if m.Vel.X <= 0 {
		t.Errorf("vel = %v, want still +X", m.Vel)
	}
	if math.Abs(float64(m.Vel.Y)) > 1e-5 {
		t.Errorf("forward motion gained lateral velocity %v", m.Vel.Y)
	}
}

func TestTurnSteersTowardRotatedHeading(t *testing.T) {
	// +Y is down; a positive quarter turn from +X points down.
	m := &components.Motion{Vel: geom.V(2, 0)}
	Turn(m, float32(math.Pi/2), testSteer)

	if m.Acc.Y <= 0 {
		t.Errorf("acc = %v, want downward component", m.Acc)
	}
}

func TestSeekPointsAtTarget(t *testing.T) {
	m := &components.Motion{Pos: geom.V(10, 10)}
	Seek(m, geom.V(10, 50), testSteer)

	if m.Acc.Y <= 0 || math.Abs(float64(m.Acc.X)) > 1e-5 {
		t.Errorf("acc = %v, want straight +Y", m.Acc)
	}
}

func TestWanderBypassesForceClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := &components.Motion{}
	Wander(m, rng, testSteer)

	if got := m.Acc.Mag(); math.Abs(float64(got-testSteer.WanderImpulse)) > 1e-5 {
		t.Errorf("wander impulse = %v, want %v", got, testSteer.WanderImpulse)
	}
}

func TestIntegrate(t *testing.T) {
	m := &components.Motion{
		Pos: geom.V(10, 10),
		Vel: geom.V(1, 0),
		Acc: geom.V(0.5, 0),
	}
	Integrate(m, testSteer)

	if m.Vel != geom.V(1.5, 0) {
		t.Errorf("vel = %v, want {1.5 0}", m.Vel)
	}
	if m.Pos != geom.V(11.5, 10) {
		t.Errorf("pos = %v, want {11.5 10}", m.Pos)
	}
	if m.Acc != (geom.Vec2{}) {
		t.Errorf("acc = %v, want cleared", m.Acc)
	}
}

func TestIntegrateClampsSpeed(t *testing.T) {
	m := &components.Motion{Vel: geom.V(2, 0), Acc: geom.V(5, 0)}
	Integrate(m, testSteer)

	if got := m.Vel.Mag(); math.Abs(float64(got-testSteer.MaxSpeed)) > 1e-5 {
		t.Errorf("speed = %v, want clamped to %v", got, testSteer.MaxSpeed)
	}
}

func TestSensorPosition(t *testing.T) {
	m := &components.Motion{Pos: geom.V(100, 100), Vel: geom.V(2, 0)}

	front := SensorPosition(m, 0, testSteer)
	want := geom.V(130, 100)
	if front.Dist(want) > 1e-3 {
		t.Errorf("front sensor = %v, want %v", front, want)
	}

	// A quarter-turn sensor sits beside the agent, same distance away.
	side := SensorPosition(m, float32(math.Pi/2), testSteer)
	if d := side.Dist(m.Pos); math.Abs(float64(d-testSteer.SensorDist)) > 1e-3 {
		t.Errorf("side sensor distance = %v, want %v", d, testSteer.SensorDist)
	}
	if side.Y <= m.Pos.Y {
		t.Errorf("side sensor = %v, want below the agent", side)
	}
}

func TestClampToBoundsSurface(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 400, SurfaceY: 100, MaxY: 400, Pad: 5}

	m := &components.Motion{Pos: geom.V(200, 90), Vel: geom.V(0, -1)}
	ClampToBounds(m, b)

	if m.Pos.Y != b.SurfaceY {
		t.Errorf("pos.Y = %v, want pinned to surface %v", m.Pos.Y, b.SurfaceY)
	}
	if m.Vel.Y <= 0 {
		t.Errorf("vel.Y = %v, want reflected downward", m.Vel.Y)
	}
}

func TestClampToBoundsWalls(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 400, SurfaceY: 100, MaxY: 400, Pad: 5}

	m := &components.Motion{Pos: geom.V(399, 200), Vel: geom.V(1, 0)}
	ClampToBounds(m, b)
	if m.Pos.X != b.MaxX-b.Pad {
		t.Errorf("pos.X = %v, want %v", m.Pos.X, b.MaxX-b.Pad)
	}
	if m.Vel.X >= 0 {
		t.Errorf("vel.X = %v, want reflected", m.Vel.X)
	}

	m = &components.Motion{Pos: geom.V(200, 399), Vel: geom.V(0, 1)}
	ClampToBounds(m, b)
	if m.Pos.Y != b.MaxY-b.Pad {
		t.Errorf("pos.Y = %v, want %v", m.Pos.Y, b.MaxY-b.Pad)
	}
	if m.Vel.Y >= 0 {
		t.Errorf("vel.Y = %v, want reflected", m.Vel.Y)
	}
}

func TestClampToBoundsInteriorUntouched(t *testing.T) {
	b := Bounds{MinX: 0, MaxX: 400, SurfaceY: 100, MaxY: 400, Pad: 5}

	m := &components.Motion{Pos: geom.V(200, 200), Vel: geom.V(1, 1)}
	ClampToBounds(m, b)

	if m.Pos != geom.V(200, 200) || m.Vel != geom.V(1, 1) {
		t.Errorf("interior agent modified: pos=%v vel=%v", m.Pos, m.Vel)
	}
}
