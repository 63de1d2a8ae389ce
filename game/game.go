// Package game owns the simulation state and the fixed-order physics step
// tying the pheromone field, agents, leaves, and the colony lifecycle
// together.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/geom"
	"github.com/pthm-cable/formica/systems"
	"github.com/pthm-cable/formica/telemetry"
)

// Options configure a new Game.
type Options struct {
	Seed             int64
	OutputDir        string // empty disables CSV output
	LogStats         bool
	LogIntervalTicks int // 0 = use config value
}

// Game holds the complete simulation state. It is stepped by an external
// loop once per frame; all mutation happens inside Step.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers and filters
	agentMapper *ecs.Map2[components.Motion, components.Agent]
	agentFilter *ecs.Filter2[components.Motion, components.Agent]
	leafMapper  *ecs.Map2[components.Motion, components.Leaf]
	leafFilter  *ecs.Filter2[components.Motion, components.Leaf]

	// Core subsystems
	grid     *systems.PheromoneGrid
	behavior *systems.Behavior
	clock    *telemetry.Clock
	stats    [2]*telemetry.ColonyStats
	output   *telemetry.OutputManager

	// Colony state
	foodStock [2]int
	popCount  [2]int // population counted before death-pruning, used by reproduction

	// Runtime tunables
	params Params

	// World geometry
	bounds      systems.Bounds
	nests       [2]geom.Vec2
	leafParams  systems.LeafParams
	leafMinX    float32
	leafMaxX    float32
	spawnPoints []geom.Vec2

	tick int64

	logStats    bool
	logInterval int64

	// Scratch buffers reused across steps
	leafRefs []systems.LeafRef
}

// New creates a fully initialized simulation from the loaded config.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()
	d := &cfg.Derived

	world := ecs.NewWorld()

	g := &Game{
		world:       world,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		agentMapper: ecs.NewMap2[components.Motion, components.Agent](world),
		agentFilter: ecs.NewFilter2[components.Motion, components.Agent](world),
		leafMapper:  ecs.NewMap2[components.Motion, components.Leaf](world),
		leafFilter:  ecs.NewFilter2[components.Motion, components.Leaf](world),
		logStats:    opts.LogStats,
	}

	g.logInterval = int64(opts.LogIntervalTicks)
	if g.logInterval <= 0 {
		g.logInterval = int64(cfg.Telemetry.LogIntervalTicks)
	}

	g.bounds = systems.Bounds{
		MinX:     d.PlayMinX,
		MaxX:     d.PlayMaxX,
		SurfaceY: d.SurfaceY32,
		MaxY:     d.WorldH32,
		Pad:      float32(cfg.World.EdgePadding),
	}

	for i := 0; i < 2; i++ {
		g.nests[i] = geom.V(d.NestX[i], d.NestY)
		g.stats[i] = &telemetry.ColonyStats{}
	}

	g.grid = systems.NewPheromoneGrid(d.Cols, d.Rows, cfg.World.Resolution,
		float32(cfg.Agent.NestRefreshRadius))
	g.grid.Reset(g.nests[0], g.nests[1])

	g.behavior = &systems.Behavior{
		Grid:   g.grid,
		Bounds: g.bounds,
		Nests:  g.nests,
		Rng:    g.rng,
		Steer: systems.SteerParams{
			MaxSpeed:      float32(cfg.Agent.MaxSpeed),
			MaxForce:      float32(cfg.Agent.MaxForce),
			SensorDist:    float32(cfg.Agent.SensorDistance),
			SensorAngle:   float32(cfg.Agent.SensorAngle),
			WanderImpulse: float32(cfg.Agent.WanderImpulse),
		},
		Params: systems.BehaviorParams{
			SmellRadius:  float32(cfg.Agent.SmellRadius),
			PickupRadius: float32(cfg.Agent.PickupRadius),
			NestRadius:   float32(cfg.Agent.NestRadius),
			TrailDecay:   float32(cfg.Agent.TrailDecay),
			FoodDeposit:  float32(cfg.Agent.FoodDeposit),
			BiteAmount:   float32(cfg.Agent.BiteAmount),
		},
	}

	g.leafParams = systems.LeafParams{
		PixelsPerMeter: float32(cfg.Leaf.PixelsPerMeter),
		Gravity:        float32(cfg.Physics.Gravity),
		AirDensity:     float32(cfg.Physics.AirDensity),
		Mass:           float32(cfg.Leaf.Mass),
		DragCoeff:      float32(cfg.Leaf.DragCoefficient),
		FrontalArea:    float32(cfg.Leaf.FrontalArea),
		Wind:           geom.V(float32(cfg.Leaf.WindX), float32(cfg.Leaf.WindY)),
		WallBounce:     float32(cfg.Leaf.WallBounce),
	}
	g.leafMinX = d.PlayMinX + float32(cfg.Leaf.WallMargin)
	g.leafMaxX = d.PlayMaxX - float32(cfg.Leaf.WallMargin)

	g.initForest(cfg)
	g.params = DefaultParams(cfg)

	var err error
	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g.spawnInitialPopulation(cfg)
	g.clock = telemetry.NewClock(cfg.Time.DayLength, cfg.Time.SeasonLengthDays)
	g.clock.Recalc(g.stats[0], g.stats[1])

	return g, nil
}

// initForest derives the canopy points leaves fall from.
func (g *Game) initForest(cfg *config.Config) {
	d := &cfg.Derived
	playableWidth := d.PlayMaxX - d.PlayMinX

	g.spawnPoints = g.spawnPoints[:0]
	for _, tree := range cfg.Forest.Trees {
		x := d.PlayMinX + playableWidth*float32(tree.XFrac)
		y := d.SurfaceY32 - float32(tree.Size)
		g.spawnPoints = append(g.spawnPoints, geom.V(x, y))
	}
}

// Update runs the configured number of physics steps, or none while
// paused. Pausing freezes the clock and all entity state.
func (g *Game) Update() {
	if g.params.Paused {
		return
	}
	for i := 0; i < g.params.StepsPerFrame; i++ {
		g.Step()
	}
}

// Reset atomically restarts the simulation: entities, stocks, grid,
// clock, and statistics are replaced; runtime parameters survive. The
// simulation resumes unpaused.
func (g *Game) Reset() {
	cfg := config.Cfg()

	g.removeAllAgents()
	g.removeAllLeaves()

	g.foodStock[0] = 0
	g.foodStock[1] = 0
	g.popCount[0] = 0
	g.popCount[1] = 0

	g.clock.Reset()
	g.stats[0].Reset()
	g.stats[1].Reset()
	g.grid.Reset(g.nests[0], g.nests[1])
	g.initForest(cfg)

	g.spawnInitialPopulation(cfg)
	g.clock.Recalc(g.stats[0], g.stats[1])

	g.params.Paused = false
}

// Params returns the current runtime parameters.
func (g *Game) Params() Params { return g.params }

// SetParams replaces the runtime parameters before the next step.
func (g *Game) SetParams(p Params) { g.params = p }

// Tick returns the number of completed physics steps.
func (g *Game) Tick() int64 { return g.tick }

// Close flushes telemetry output.
func (g *Game) Close() error { return g.output.Close() }

func (g *Game) removeAllAgents() {
	var entities []ecs.Entity
	query := g.agentFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.agentMapper.Remove(e)
	}
}

func (g *Game) removeAllLeaves() {
	var entities []ecs.Entity
	query := g.leafFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.leafMapper.Remove(e)
	}
}
