package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/systems"
	"github.com/pthm-cable/formica/telemetry"
)

// Step executes one physics step in fixed order: clock, evaporation, leaf
// spawn, leaf physics, agent updates, reproduction. The step is the unit
// of atomicity; nothing outside it may observe a half-applied state.
func (g *Game) Step() {
	// 1. Advance the calendar. A day rollover snapshots both colonies'
	// statistics and emits the daily telemetry records.
	g.clock.Tick(1.0)
	if g.clock.Recalc(g.stats[0], g.stats[1]) {
		g.writeDailyRecords()
	}

	// 2. Let the grid decay at each colony's current rate.
	g.grid.Evaporate(
		g.params.Colony[0].Evaporation,
		g.params.Colony[1].Evaporation,
		g.bounds,
	)

	// 3. Season-modulated leaf spawning.
	g.maybeSpawnLeaf()

	// 4. Leaf physics, then prune consumed leaves.
	g.updateLeaves()

	// 5. Agents: sense, decide, act, interact - strictly one at a time
	// so deposits are visible to later agents within the same step.
	g.updateAgents()

	// 6. Reproduction, using the population counted before this step's
	// death-pruning.
	g.updateReproduction()

	g.tick++
	g.maybeLogState()
}

// maybeSpawnLeaf rolls the per-tick spawn probability, elevated in autumn
// and suppressed in winter.
func (g *Game) maybeSpawnLeaf() {
	cfg := config.Cfg()

	var seasonMod float32
	switch g.clock.SeasonIdx {
	case telemetry.SeasonAutumn:
		seasonMod = float32(cfg.Seasons.AutumnLeafModifier)
	case telemetry.SeasonWinter:
		seasonMod = float32(cfg.Seasons.WinterLeafModifier)
	default:
		seasonMod = float32(cfg.Seasons.BaseLeafModifier)
	}

	if g.rng.Float32() < g.params.LeafRate*seasonMod {
		g.spawnLeaf()
	}
}

// updateLeaves advances every leaf's physics and removes any whose
// resource is exhausted.
func (g *Game) updateLeaves() {
	dt := config.Cfg().Derived.DT32

	var consumed []ecs.Entity
	query := g.leafFilter.Query()
	for query.Next() {
		m, leaf := query.Get()
		systems.UpdateLeaf(m, dt, g.bounds.SurfaceY, g.leafMinX, g.leafMaxX, g.leafParams)
		if leaf.Amount <= 0 {
			consumed = append(consumed, query.Entity())
		}
	}
	for _, e := range consumed {
		g.leafMapper.Remove(e)
	}
}

// updateAgents runs the behavior loop for every live agent, applies the
// resulting statistics and stock changes, and prunes the dead. Population
// is counted during the pass, before pruning, so an agent dying this step
// still counts against the reproduction cap.
func (g *Game) updateAgents() {
	// Leaf views are rebuilt each step; the amount pointers stay valid
	// because no structural ECS change happens until the pass is done.
	g.leafRefs = g.leafRefs[:0]
	leafQuery := g.leafFilter.Query()
	for leafQuery.Next() {
		m, leaf := leafQuery.Get()
		g.leafRefs = append(g.leafRefs, systems.LeafRef{Pos: m.Pos, Amount: &leaf.Amount})
	}

	g.popCount[0] = 0
	g.popCount[1] = 0

	type deadInfo struct {
		entity ecs.Entity
		colony components.ColonyID
	}
	var dead []deadInfo

	query := g.agentFilter.Query()
	for query.Next() {
		m, a := query.Get()
		g.popCount[a.Colony]++

		out := g.behavior.Update(m, a, g.params.Colony[a.Colony].Metabolism, g.leafRefs)
		if out.PickedUp {
			g.stats[a.Colony].RegisterFood()
		}
		if out.Delivered {
			g.foodStock[a.Colony]++
		}

		if a.Dead() {
			dead = append(dead, deadInfo{entity: query.Entity(), colony: a.Colony})
		}
	}

	for _, d := range dead {
		g.agentMapper.Remove(d.entity)
		g.stats[d.colony].RegisterDeath()
	}
}

// updateReproduction lets each colony trade stored food for a new agent,
// independently and at most once per step.
func (g *Game) updateReproduction() {
	maxPerColony := config.Cfg().Population.MaxPerColony

	for c := components.ColonyA; c <= components.ColonyB; c++ {
		cost := g.params.Colony[c].SpawnCost
		if g.popCount[c] < maxPerColony && g.foodStock[c] >= cost {
			g.foodStock[c] -= cost
			g.spawnAgent(c)
		}
	}
}

// writeDailyRecords emits one CSV row per colony for the day that just
// ended, including an energy distribution summary of the live population.
func (g *Game) writeDailyRecords() {
	if g.output == nil {
		return
	}

	var (
		pops     [2]int
		energies [2][]float64
	)
	query := g.agentFilter.Query()
	for query.Next() {
		_, a := query.Get()
		pops[a.Colony]++
		energies[a.Colony] = append(energies[a.Colony], float64(a.Energy))
	}

	cfg := config.Cfg()
	records := make([]telemetry.DailyRecord, 0, 2)
	for i := 0; i < 2; i++ {
		prev := g.stats[i].Previous
		sum := telemetry.SummarizeEnergy(energies[i])
		records = append(records, telemetry.DailyRecord{
			Day:          g.clock.Day - 1,
			Colony:       cfg.Colonies[i].Name,
			Season:       g.clock.SeasonName(),
			Food:         prev.Food,
			Births:       prev.Births,
			Deaths:       prev.Deaths,
			Population:   pops[i],
			FoodStock:    g.foodStock[i],
			EnergyMean:   sum.Mean,
			EnergyStdDev: sum.StdDev,
			EnergyP10:    sum.P10,
			EnergyP50:    sum.P50,
			EnergyP90:    sum.P90,
		})
	}

	if err := g.output.WriteDaily(records); err != nil {
		logWriteError(err)
	}
}
