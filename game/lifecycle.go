package game

import (
	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/geom"
)

// spawnInitialPopulation seeds both colonies evenly at their nests.
func (g *Game) spawnInitialPopulation(cfg *config.Config) {
	for i := 0; i < cfg.Population.Initial/2; i++ {
		g.spawnAgent(components.ColonyA)
		g.spawnAgent(components.ColonyB)
	}
}

// spawnAgent creates a new agent at its colony's nest and records the
// birth. Newborns head upward so they leave the nest toward the surface.
func (g *Game) spawnAgent(colony components.ColonyID) {
	g.SpawnAgentAt(colony, g.nests[colony])
	g.stats[colony].RegisterBirth()
}

// SpawnAgentAt places an agent at an arbitrary position. Exposed for
// embedding frontends and scenario seeding; normal births go through the
// reproduction path and always start at the nest.
func (g *Game) SpawnAgentAt(colony components.ColonyID, pos geom.Vec2) {
	cfg := config.Cfg()

	vel := geom.RandomDir(g.rng)
	if vel.Y > 0 {
		vel.Y *= -1 // out of the nest, toward the surface
	}

	maxEnergy := float32(cfg.Agent.MaxEnergy)
	minLife := float32(cfg.Agent.MinLifespan)
	maxLife := float32(cfg.Agent.MaxLifespan)

	motion := components.Motion{Pos: pos, Vel: vel}
	agent := components.Agent{
		State:         components.StateSearching,
		Colony:        colony,
		Energy:        maxEnergy,
		MaxEnergy:     maxEnergy,
		MaxAge:        minLife + g.rng.Float32()*(maxLife-minLife),
		TrailStrength: 1.0,
	}

	g.agentMapper.NewEntity(&motion, &agent)
}

// spawnLeaf drops a new leaf from a random canopy point with a little
// positional jitter and a randomized initial velocity.
func (g *Game) spawnLeaf() {
	cfg := config.Cfg()

	pos := geom.V(float32(cfg.World.Width)/2, 50)
	if len(g.spawnPoints) > 0 {
		pos = g.spawnPoints[g.rng.Intn(len(g.spawnPoints))]
	}
	jitter := float32(cfg.Forest.SpawnJitter)
	pos.X += (g.rng.Float32()*2 - 1) * jitter
	pos.Y += (g.rng.Float32()*2 - 1) * jitter

	vx := float32(cfg.Leaf.InitVelX)
	motion := components.Motion{
		Pos: pos,
		Vel: geom.V(
			(g.rng.Float32()*2-1)*vx,
			g.rng.Float32()*float32(cfg.Leaf.InitVelYMax),
		),
	}
	leaf := components.Leaf{Amount: float32(cfg.Leaf.InitialAmount)}

	g.leafMapper.NewEntity(&motion, &leaf)
}

// SpawnLeafAt places a leaf with the given resource amount at an
// arbitrary position. Exposed for embedding frontends and scenario
// seeding.
func (g *Game) SpawnLeafAt(pos geom.Vec2, amount float32) {
	motion := components.Motion{Pos: pos}
	leaf := components.Leaf{Amount: amount}
	g.leafMapper.NewEntity(&motion, &leaf)
}
