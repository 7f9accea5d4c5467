// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Collision CollisionConfig `yaml:"collision"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Bouncy    BouncyConfig    `yaml:"bouncy"`
	Walker    WalkerConfig    `yaml:"walker"`
	Rockets   RocketsConfig   `yaml:"rockets"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the spatial region grid layout.
type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Columns int     `yaml:"columns"`
	Scale   float64 `yaml:"scale"` // position fraction multiplier before flooring to a cell
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	VelocityLimit float64 `yaml:"velocity_limit"` // symmetric per-axis clamp
	Gravity       float64 `yaml:"gravity"`        // per-tick vertical acceleration for bouncy balls
}

// BoundaryConfig holds wall contact parameters.
type BoundaryConfig struct {
	LowEpsilon      float64 `yaml:"low_epsilon"`      // contact tolerance at x=r / y=r
	HighEpsilon     float64 `yaml:"high_epsilon"`     // contact tolerance at extent-r
	WallFriction    float64 `yaml:"wall_friction"`    // tangential multiplier on left/right walls
	FloorFriction   float64 `yaml:"floor_friction"`   // tangential multiplier at y=r
	CeilingFriction float64 `yaml:"ceiling_friction"` // tangential multiplier at y=extent-r
}

// CollisionConfig holds overlap test parameters.
type CollisionConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// LifecycleConfig holds drop thresholds.
type LifecycleConfig struct {
	OutsideMargin float64 `yaml:"outside_margin"`
	RestSpeed     float64 `yaml:"rest_speed"`
	FloorMargin   float64 `yaml:"floor_margin"`
}

// BouncyConfig holds the bouncing ball scenario parameters.
type BouncyConfig struct {
	Population  int     `yaml:"population"`
	MassMin     float64 `yaml:"mass_min"`
	MassMax     float64 `yaml:"mass_max"`
	RadiusMin   float64 `yaml:"radius_min"`
	RadiusMax   float64 `yaml:"radius_max"`
	SpawnBand   float64 `yaml:"spawn_band"` // balls spawn within this distance of the top edge
	LaunchSpeed float64 `yaml:"launch_speed"`
}

// WalkerConfig holds the random walker scenario parameters.
type WalkerConfig struct {
	Population int     `yaml:"population"`
	Step       float64 `yaml:"step"`
	Radius     float64 `yaml:"radius"`
}

// RocketsConfig holds the smart rockets genetic scenario parameters.
type RocketsConfig struct {
	Population       int     `yaml:"population"`
	Radius           float64 `yaml:"radius"`
	TicksPerMove     int     `yaml:"ticks_per_move"`
	Thrust           float64 `yaml:"thrust"`
	MutationChance   float64 `yaml:"mutation_chance"`
	MaxWeight        float64 `yaml:"max_weight"`
	SelectionRetries int     `yaml:"selection_retries"`
	TargetX          float64 `yaml:"target_x"` // fraction of field width
	TargetY          float64 `yaml:"target_y"` // fraction of field height
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32
	ScreenH32     float32
	VelocityLimit float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects parameter combinations the systems cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Grid.Rows < 2 || c.Grid.Columns < 2:
		return fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalid, c.Grid.Rows, c.Grid.Columns)
	case c.Grid.Scale <= 0:
		return fmt.Errorf("%w: grid scale %v", ErrInvalid, c.Grid.Scale)
	case c.Physics.VelocityLimit <= 0:
		return fmt.Errorf("%w: velocity limit %v", ErrInvalid, c.Physics.VelocityLimit)
	case c.Bouncy.MassMin <= 0 || c.Bouncy.MassMax < c.Bouncy.MassMin:
		return fmt.Errorf("%w: bouncy mass range [%v, %v)", ErrInvalid, c.Bouncy.MassMin, c.Bouncy.MassMax)
	case c.Bouncy.RadiusMin <= 0 || c.Bouncy.RadiusMax < c.Bouncy.RadiusMin:
		return fmt.Errorf("%w: bouncy radius range [%v, %v)", ErrInvalid, c.Bouncy.RadiusMin, c.Bouncy.RadiusMax)
	case c.Rockets.Population < 2:
		return fmt.Errorf("%w: rockets need at least two agents, got %d", ErrInvalid, c.Rockets.Population)
	case c.Rockets.TicksPerMove < 1:
		return fmt.Errorf("%w: ticks per move %d", ErrInvalid, c.Rockets.TicksPerMove)
	case c.Rockets.MutationChance < 0 || c.Rockets.MutationChance > 1:
		return fmt.Errorf("%w: mutation chance %v", ErrInvalid, c.Rockets.MutationChance)
	case c.Rockets.MaxWeight <= 0:
		return fmt.Errorf("%w: max weight %v", ErrInvalid, c.Rockets.MaxWeight)
	}

	frictions := []float64{c.Boundary.WallFriction, c.Boundary.FloorFriction, c.Boundary.CeilingFriction}
	for _, f := range frictions {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("%w: friction %v must be in (0, 1)", ErrInvalid, f)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.VelocityLimit = float32(c.Physics.VelocityLimit)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
