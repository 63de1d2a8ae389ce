package game

import (
	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/geom"
	"github.com/pthm-cable/formica/systems"
	"github.com/pthm-cable/formica/telemetry"
)

// AgentView is the read-only per-agent state exposed for rendering.
// Heading is the travel direction in radians, for oriented sprites.
type AgentView struct {
	Pos     geom.Vec2
	Heading float32
	Colony  components.ColonyID
	HasFood bool
	State   components.AgentState
}

// LeafView is the read-only per-leaf state exposed for rendering.
type LeafView struct {
	Pos    geom.Vec2
	Amount float32
}

// Agents returns a snapshot of every live agent.
func (g *Game) Agents() []AgentView {
	var views []AgentView
	query := g.agentFilter.Query()
	for query.Next() {
		m, a := query.Get()
		views = append(views, AgentView{
			Pos:     m.Pos,
			Heading: m.Vel.Heading(),
			Colony:  a.Colony,
			HasFood: a.HasFood,
			State:   a.State,
		})
	}
	return views
}

// Leaves returns a snapshot of every leaf still holding food.
func (g *Game) Leaves() []LeafView {
	var views []LeafView
	query := g.leafFilter.Query()
	for query.Next() {
		m, leaf := query.Get()
		views = append(views, LeafView{Pos: m.Pos, Amount: leaf.Amount})
	}
	return views
}

// Population returns the live agent count of one colony.
func (g *Game) Population(colony components.ColonyID) int {
	count := 0
	query := g.agentFilter.Query()
	for query.Next() {
		_, a := query.Get()
		if a.Colony == colony {
			count++
		}
	}
	return count
}

// FoodStock returns one colony's stored food.
func (g *Game) FoodStock(colony components.ColonyID) int {
	return g.foodStock[colony]
}

// Stats returns a copy of one colony's daily statistics.
func (g *Game) Stats(colony components.ColonyID) telemetry.ColonyStats {
	return *g.stats[colony]
}

// Clock returns a copy of the calendar state.
func (g *Game) Clock() telemetry.Clock {
	return *g.clock
}

// Grid exposes the pheromone field for heat-map rendering. Callers must
// treat it as read-only; all mutation happens inside Step.
func (g *Game) Grid() *systems.PheromoneGrid {
	return g.grid
}

// Nest returns one colony's nest position.
func (g *Game) Nest(colony components.ColonyID) geom.Vec2 {
	return g.nests[colony]
}
