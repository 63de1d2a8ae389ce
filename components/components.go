// Package components defines the ECS components for the colony simulation.
package components

import "github.com/pthm-cable/formica/geom"

// ColonyID selects one of the two competing colonies.
type ColonyID uint8

// The two colonies. A lays scent on channels 0/1, B on channels 2/3.
const (
	ColonyA ColonyID = 0
	ColonyB ColonyID = 1
)

// HomeChannel returns the pheromone grid channel carrying this colony's
// home scent.
func (c ColonyID) HomeChannel() int { return int(c) * 2 }

// FoodChannel returns the pheromone grid channel carrying this colony's
// food scent.
func (c ColonyID) FoodChannel() int { return int(c)*2 + 1 }

// AgentState enumerates the behavior states of a forager.
type AgentState uint8

const (
	// StateSearching is the default state of an empty-handed agent.
	StateSearching AgentState = iota
	// StateReturning is the state of an agent carrying food.
	StateReturning
	// StateWandering is a transient sub-state entered when trail
	// following finds no usable signal.
	StateWandering
)

// String returns a short label for UI and logging.
func (s AgentState) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateReturning:
		return "returning"
	case StateWandering:
		return "wandering"
	}
	return "unknown"
}

// Motion holds the kinematic state shared by moving entities. Acc is the
// per-tick force accumulator; integration folds it into Vel and clears it.
type Motion struct {
	Pos geom.Vec2
	Vel geom.Vec2
	Acc geom.Vec2
}

// Agent holds the behavioral state of one forager.
type Agent struct {
	State   AgentState
	HasFood bool
	Colony  ColonyID

	Energy    float32
	MaxEnergy float32
	Age       float32
	MaxAge    float32 // randomized at birth; reaching it kills the agent

	// TrailStrength is the freshness of the home trail this agent lays.
	// Reset to 1 on pickup and delivery, decays linearly while traveling.
	TrailStrength float32
}

// Dead reports whether the agent should be removed this tick.
func (a *Agent) Dead() bool {
	return a.Energy <= 0 || a.Age >= a.MaxAge
}

// Leaf is a falling or fallen food particle. It is removed once Amount
// reaches zero.
type Leaf struct {
	Amount float32
}
