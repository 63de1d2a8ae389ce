package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/geom"
)

// BehaviorParams holds the sensing and interaction distances of an agent.
type BehaviorParams struct {
	SmellRadius  float32 // direct food detection, overrides trail following
	PickupRadius float32
	NestRadius   float32 // delivery distance to the nest
	TrailDecay   float32 // linear per-tick decay of the laid home scent
	FoodDeposit  float32 // amount added to the food channel per tick
	BiteAmount   float32 // amount claimed from a leaf on pickup
}

// LeafRef is the per-step view of one food particle that agents sense and
// bite. Amount points at the live component so a pickup is visible to the
// next agent in the same step.
type LeafRef struct {
	Pos    geom.Vec2
	Amount *float32
}

// Outcome reports what one agent update did to the shared world. The
// orchestrator turns these into statistics and food-stock changes.
type Outcome struct {
	PickedUp  bool
	Delivered bool
}

// Behavior drives the per-agent sense/decide/act loop against the shared
// pheromone grid. One Behavior is shared by all agents; agents are
// processed strictly one at a time so a deposit is sensed by every later
// agent in the same step.
type Behavior struct {
	Grid   *PheromoneGrid
	Bounds Bounds
	Nests  [2]geom.Vec2
	Steer  SteerParams
	Params BehaviorParams
	Rng    *rand.Rand
}

// Update runs one full tick for one agent: metabolism, trail decay, the
// state machine, physics integration, bounds handling, and environment
// interaction. metabolism is the colony's current per-tick energy cost.
// Death is not handled here; the orchestrator prunes after the update.
func (b *Behavior) Update(m *components.Motion, a *components.Agent, metabolism float32, leaves []LeafRef) Outcome {
	a.Age++
	a.Energy -= metabolism

	if a.TrailStrength > 0 {
		a.TrailStrength -= b.Params.TrailDecay
		if a.TrailStrength < 0 {
			a.TrailStrength = 0
		}
	}

	// Carrying food forces RETURNING; otherwise every tick starts back
	// in SEARCHING. WANDERING only survives within a tick.
	if a.HasFood {
		a.State = components.StateReturning
	} else {
		a.State = components.StateSearching
	}

	switch a.State {
	case components.StateSearching:
		if !b.smellFood(m, leaves) {
			a.State = b.followTrail(m, a.Colony.FoodChannel())
		}
	case components.StateReturning:
		b.returnHome(m, a)
	case components.StateWandering:
		Wander(m, b.Rng, b.Steer)
	}

	Integrate(m, b.Steer)
	ClampToBounds(m, b.Bounds)

	return b.interact(m, a, leaves)
}

// smellFood steers toward the closest grounded leaf within smell radius.
// Direct sensing overrides trail following.
func (b *Behavior) smellFood(m *components.Motion, leaves []LeafRef) bool {
	var closest geom.Vec2
	found := false
	record := b.Params.SmellRadius

	for _, leaf := range leaves {
		// Leaves still in the air cannot be smelled.
		if leaf.Pos.Y < b.Bounds.SurfaceY {
			continue
		}
		d := m.Pos.Dist(leaf.Pos)
		if d < record {
			record = d
			closest = leaf.Pos
			found = true
		}
	}

	if found {
		Seek(m, closest, b.Steer)
	}
	return found
}

// followTrail samples the given channel at the three sensors and steers
// toward the strongest reading. Returns the state the agent ends the tick
// in: WANDERING when there is no usable signal, SEARCHING otherwise.
func (b *Behavior) followTrail(m *components.Motion, channel int) components.AgentState {
	vf := b.Grid.Get(SensorPosition(m, 0, b.Steer), channel)
	vl := b.Grid.Get(SensorPosition(m, -b.Steer.SensorAngle, b.Steer), channel)
	vr := b.Grid.Get(SensorPosition(m, b.Steer.SensorAngle, b.Steer), channel)

	if vf == 0 && vl == 0 && vr == 0 {
		Wander(m, b.Rng, b.Steer)
		return components.StateWandering
	}

	switch {
	case vf > vl && vf > vr:
		MoveForward(m, b.Steer)
	case vl > vr:
		Turn(m, -b.Steer.SensorAngle*0.5, b.Steer)
	case vr > vl:
		Turn(m, b.Steer.SensorAngle*0.5, b.Steer)
	default:
		// Exact lateral tie with signal present: no direction wins.
		Wander(m, b.Rng, b.Steer)
		return components.StateWandering
	}
	return components.StateSearching
}

// returnHome follows the colony's home channel back to the nest. With no
// trail under any sensor the agent falls back to a direct bearing on the
// nest plus wander noise; a lost agent is never left lost.
func (b *Behavior) returnHome(m *components.Motion, a *components.Agent) {
	channel := a.Colony.HomeChannel()
	vf := b.Grid.Get(SensorPosition(m, 0, b.Steer), channel)
	vl := b.Grid.Get(SensorPosition(m, -b.Steer.SensorAngle, b.Steer), channel)
	vr := b.Grid.Get(SensorPosition(m, b.Steer.SensorAngle, b.Steer), channel)

	if vf == 0 && vl == 0 && vr == 0 {
		nest := b.Nests[a.Colony]
		ApplySteering(m, nest.Sub(m.Pos), b.Steer)
		Wander(m, b.Rng, b.Steer)
		return
	}

	switch {
	case vf >= vl && vf >= vr:
		MoveForward(m, b.Steer)
	case vl > vr:
		Turn(m, -b.Steer.SensorAngle*0.8, b.Steer)
	default:
		Turn(m, b.Steer.SensorAngle*0.8, b.Steer)
	}
}

// interact handles scent deposits, food pickup, and nest delivery after
// the agent has moved.
func (b *Behavior) interact(m *components.Motion, a *components.Agent, leaves []LeafRef) Outcome {
	var out Outcome

	// Deposits only happen underground.
	if m.Pos.Y > b.Bounds.SurfaceY {
		if a.HasFood {
			b.Grid.Add(m.Pos, a.Colony.FoodChannel(), b.Params.FoodDeposit)
		} else {
			// Overwrite-if-greater: a fading trail must not erase a
			// fresher one laid by another agent.
			cur := b.Grid.Get(m.Pos, a.Colony.HomeChannel())
			if a.TrailStrength > cur {
				b.Grid.Set(m.Pos, a.Colony.HomeChannel(), a.TrailStrength)
			}
		}
	}

	if !a.HasFood {
		for _, leaf := range leaves {
			onGround := leaf.Pos.Y >= b.Bounds.SurfaceY
			if onGround && m.Pos.Dist(leaf.Pos) < b.Params.PickupRadius {
				*leaf.Amount -= b.Params.BiteAmount
				a.HasFood = true
				a.Energy = a.MaxEnergy // eating a bite restores the agent
				a.TrailStrength = 1.0
				m.Vel = m.Vel.Rotate(math.Pi) // head back
				out.PickedUp = true
				break // at most one pickup per tick
			}
		}
	} else if m.Pos.Dist(b.Nests[a.Colony]) < b.Params.NestRadius {
		a.HasFood = false
		a.TrailStrength = 1.0
		m.Vel = m.Vel.Rotate(math.Pi)
		out.Delivered = true
	}

	return out
}
