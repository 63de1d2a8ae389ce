// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Time       TimeConfig       `yaml:"time"`
	Population PopulationConfig `yaml:"population"`
	Agent      AgentConfig      `yaml:"agent"`
	Leaf       LeafConfig       `yaml:"leaf"`
	Forest     ForestConfig     `yaml:"forest"`
	Seasons    SeasonsConfig    `yaml:"seasons"`
	Colonies   []ColonyConfig   `yaml:"colonies"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world geometry. The playable area excludes the left
// and right margins; the surface line splits sky (leaves fall) from soil
// (agents live).
type WorldConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Resolution      int     `yaml:"resolution"` // pheromone cell size in pixels
	SurfaceFraction float64 `yaml:"surface_fraction"`
	MarginLeft      int     `yaml:"margin_left"`
	MarginRight     int     `yaml:"margin_right"`
	EdgePadding     float64 `yaml:"edge_padding"`
	NestYOffset     float64 `yaml:"nest_y_offset"` // nest height above world bottom
}

// PhysicsConfig holds timestep and SI constants for the leaf physics.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"` // seconds per physics step
	Gravity    float64 `yaml:"gravity"`
	AirDensity float64 `yaml:"air_density"`
}

// TimeConfig holds the simulated calendar parameters.
type TimeConfig struct {
	DayLength        int `yaml:"day_length"` // ticks per day
	SeasonLengthDays int `yaml:"season_length_days"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial      int `yaml:"initial"` // total, split evenly between colonies
	MaxPerColony int `yaml:"max_per_colony"`
}

// AgentConfig holds forager locomotion, sensing, and metabolism parameters.
type AgentConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`
	MaxForce          float64 `yaml:"max_force"`
	SensorDistance    float64 `yaml:"sensor_distance"`
	SensorAngle       float64 `yaml:"sensor_angle"` // radians
	SmellRadius       float64 `yaml:"smell_radius"`
	PickupRadius      float64 `yaml:"pickup_radius"`
	NestRadius        float64 `yaml:"nest_radius"`         // delivery distance
	NestRefreshRadius float64 `yaml:"nest_refresh_radius"` // home beacon pinning
	MaxEnergy         float64 `yaml:"max_energy"`
	MinLifespan       float64 `yaml:"min_lifespan"` // ticks
	MaxLifespan       float64 `yaml:"max_lifespan"`
	TrailDecay        float64 `yaml:"trail_decay"` // per tick, linear
	FoodDeposit       float64 `yaml:"food_deposit"`
	BiteAmount        float64 `yaml:"bite_amount"`
	WanderImpulse     float64 `yaml:"wander_impulse"`
}

// LeafConfig holds food particle parameters. Physical properties are SI
// (kg, m); velocities are pixels per second.
type LeafConfig struct {
	InitialAmount    float64 `yaml:"initial_amount"`
	SpawnProbability float64 `yaml:"spawn_probability"` // per tick, before season modifier
	PixelsPerMeter   float64 `yaml:"pixels_per_meter"`
	Mass             float64 `yaml:"mass"`
	DragCoefficient  float64 `yaml:"drag_coefficient"`
	FrontalArea      float64 `yaml:"frontal_area"`
	WindX            float64 `yaml:"wind_x"` // m/s
	WindY            float64 `yaml:"wind_y"`
	WallBounce       float64 `yaml:"wall_bounce"` // damping factor on wall contact
	InitVelX         float64 `yaml:"init_vel_x"`  // initial vx in [-v, v] px/s
	InitVelYMax      float64 `yaml:"init_vel_y_max"`
	WallMargin       float64 `yaml:"wall_margin"`
}

// TreeConfig places one canopy used as a leaf spawn point.
type TreeConfig struct {
	XFrac float64 `yaml:"x_frac"` // fraction of playable width
	Size  float64 `yaml:"size"`   // canopy height above the surface
}

// ForestConfig holds the leaf spawn-point geometry.
type ForestConfig struct {
	SpawnJitter float64      `yaml:"spawn_jitter"`
	Trees       []TreeConfig `yaml:"trees"`
}

// SeasonsConfig holds per-season leaf spawn modifiers.
type SeasonsConfig struct {
	BaseLeafModifier   float64 `yaml:"base_leaf_modifier"`
	AutumnLeafModifier float64 `yaml:"autumn_leaf_modifier"`
	WinterLeafModifier float64 `yaml:"winter_leaf_modifier"`
}

// ColonyConfig holds the starting values of one colony's tunables.
type ColonyConfig struct {
	Name        string  `yaml:"name"`
	NestXFrac   float64 `yaml:"nest_x_frac"` // fraction of playable width
	Metabolism  float64 `yaml:"metabolism"`
	SpawnCost   int     `yaml:"spawn_cost"`
	Evaporation float64 `yaml:"evaporation"`
}

// TelemetryConfig holds logging and output parameters.
type TelemetryConfig struct {
	LogIntervalTicks int `yaml:"log_interval_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32
	WorldW32   float32
	WorldH32   float32
	SurfaceY32 float32
	PlayMinX   float32 // left edge of the playable area
	PlayMaxX   float32 // right edge of the playable area
	NestX      [2]float32
	NestY      float32
	Cols       int
	Rows       int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the core cannot run with.
func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: invalid world dimensions %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.Resolution <= 0 {
		return fmt.Errorf("config: resolution must be positive, got %d", c.World.Resolution)
	}
	if len(c.Colonies) != 2 {
		return fmt.Errorf("config: expected exactly 2 colonies, got %d", len(c.Colonies))
	}
	if c.Time.DayLength <= 0 {
		return fmt.Errorf("config: day_length must be positive, got %d", c.Time.DayLength)
	}
	// The interval divides the tick counter for periodic logging.
	if c.Telemetry.LogIntervalTicks <= 0 {
		return fmt.Errorf("config: log_interval_ticks must be positive, got %d", c.Telemetry.LogIntervalTicks)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	d := &c.Derived
	d.DT32 = float32(c.Physics.DT)
	d.WorldW32 = float32(c.World.Width)
	d.WorldH32 = float32(c.World.Height)
	d.SurfaceY32 = float32(float64(c.World.Height) * c.World.SurfaceFraction)
	d.PlayMinX = float32(c.World.MarginLeft)
	d.PlayMaxX = float32(c.World.Width - c.World.MarginRight)
	d.NestY = d.WorldH32 - float32(c.World.NestYOffset)

	playableWidth := d.PlayMaxX - d.PlayMinX
	for i := 0; i < 2 && i < len(c.Colonies); i++ {
		d.NestX[i] = d.PlayMinX + playableWidth*float32(c.Colonies[i].NestXFrac)
	}

	d.Cols = c.World.Width / c.World.Resolution
	d.Rows = c.World.Height / c.World.Resolution
}

// WriteYAML saves the configuration to a file for experiment reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
