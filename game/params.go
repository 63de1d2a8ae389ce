package game

import "github.com/pthm-cable/formica/config"

// ColonyParams are the per-colony tunables an embedding UI may rewrite
// between steps.
type ColonyParams struct {
	Metabolism  float32 // energy drained per agent per tick
	SpawnCost   int     // food stock paid per new agent
	Evaporation float32 // grid decay factor per tick, in [0,1)
}

// Params are the runtime-tunable simulation inputs. The core only reads
// them; ownership stays with the caller driving the simulation.
type Params struct {
	Colony [2]ColonyParams

	StepsPerFrame int     // physics steps per Update call
	LeafRate      float32 // leaf spawn probability before season modifier
	Paused        bool
}

// DefaultParams builds the runtime parameters from the loaded config.
func DefaultParams(cfg *config.Config) Params {
	p := Params{
		StepsPerFrame: 1,
		LeafRate:      float32(cfg.Leaf.SpawnProbability),
	}
	for i := 0; i < 2; i++ {
		p.Colony[i] = ColonyParams{
			Metabolism:  float32(cfg.Colonies[i].Metabolism),
			SpawnCost:   cfg.Colonies[i].SpawnCost,
			Evaporation: float32(cfg.Colonies[i].Evaporation),
		}
	}
	return p
}
