// Package game sets up a scenario and drives the systems one tick at a time.
// It has no display dependency; drivers read DrawRequests after each update.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/config"
	"github.com/pthm-cable/noc/systems"
	"github.com/pthm-cable/noc/telemetry"
)

// Options configures a game beyond the loaded config.
type Options struct {
	Scenario       Scenario
	Seed           uint64
	LogStats       bool   // log window and perf stats via slog
	OutputDir      string // CSV output directory (empty = disabled)
	StepsPerUpdate int    // simulation ticks per Update call

	StatsCallback      func(telemetry.WindowStats)
	GenerationCallback func(systems.GenerationStats)
}

// Game holds the complete simulation state for one scenario.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world *systems.World
	field systems.Field

	// Systems; nil when the scenario does not run them
	integration *systems.IntegrationSystem
	boundary    *systems.BoundarySystem
	collision   *systems.CollisionSystem
	drop        *systems.DropSystem
	walker      *systems.WalkerSystem
	genetic     *systems.GeneticSystem

	draws          []systems.DrawRequest
	lastGeneration systems.GenerationStats

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	speeds        []float64
}

// NewGameWithOptions creates a game for the configured scenario and spawns its
// initial population.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		opts:           opts,
		field:          systems.Field{Width: cfg.Derived.ScreenW32, Height: cfg.Derived.ScreenH32},
		stepsPerUpdate: opts.StepsPerUpdate,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
	}
	if err := g.Reset(); err != nil {
		om.Close()
		return nil, err
	}
	return g, nil
}

// Reset discards every entity and respawns the scenario from the original seed.
func (g *Game) Reset() error {
	cfg := g.cfg
	g.rng = rand.New(rand.NewPCG(g.opts.Seed, g.opts.Seed^0x9e3779b97f4a7c15))
	g.world = systems.NewWorld(cfg.Grid.Rows, cfg.Grid.Columns, float32(cfg.Grid.Scale))
	g.collector = telemetry.NewCollector(int32(cfg.Telemetry.StatsWindow))
	g.tick = 0
	g.lastGeneration = systems.GenerationStats{}

	g.integration = systems.NewIntegrationSystem(cfg.Derived.VelocityLimit)
	g.boundary = systems.NewBoundarySystem(systems.BoundaryParams{
		LowEpsilon:      float32(cfg.Boundary.LowEpsilon),
		HighEpsilon:     float32(cfg.Boundary.HighEpsilon),
		WallFriction:    float32(cfg.Boundary.WallFriction),
		FloorFriction:   float32(cfg.Boundary.FloorFriction),
		CeilingFriction: float32(cfg.Boundary.CeilingFriction),
	})
	g.collision = nil
	g.drop = nil
	g.walker = nil
	g.genetic = nil

	dropParams := systems.DropParams{
		OutsideMargin: float32(cfg.Lifecycle.OutsideMargin),
		RestSpeed:     float32(cfg.Lifecycle.RestSpeed),
		FloorMargin:   float32(cfg.Lifecycle.FloorMargin),
	}

	switch g.opts.Scenario {
	case ScenarioBouncy:
		g.collision = systems.NewCollisionSystem(float32(cfg.Collision.Tolerance))
		dropParams.Gravity = float32(math.Abs(cfg.Physics.Gravity))
		g.drop = systems.NewDropSystem(dropParams)
		g.replenish()
	case ScenarioWalker:
		g.walker = systems.NewWalkerSystem(g.rng)
		g.drop = systems.NewDropSystem(dropParams)
		if err := g.spawnWalkers(); err != nil {
			return err
		}
	case ScenarioRockets:
		r := cfg.Rockets
		g.collision = systems.NewCollisionSystem(float32(cfg.Collision.Tolerance))
		g.genetic = systems.NewGeneticSystem(systems.GeneticParams{
			Target:           g.rocketTarget(),
			Start:            g.rocketStart(),
			TicksPerMove:     r.TicksPerMove,
			Thrust:           float32(r.Thrust),
			MutationChance:   r.MutationChance,
			MaxWeight:        r.MaxWeight,
			SelectionRetries: r.SelectionRetries,
		}, g.rng)
		if err := g.spawnRockets(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownScenario, g.opts.Scenario)
	}

	slog.Info("scenario ready",
		"scenario", g.opts.Scenario.String(),
		"entities", g.world.Registry.Len(),
		"seed", g.opts.Seed,
	)
	return nil
}

// Update advances the simulation by the configured number of ticks unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Step advances the simulation by exactly one tick, ignoring pause.
func (g *Game) Step() {
	g.perfCollector.StartTick()
	g.simulationStep()
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// SetField resizes the field. Drivers call it when their window changes size.
// Positions are corrected by the boundary system on the next tick.
func (g *Game) SetField(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == g.field.Width && height == g.field.Height {
		return
	}
	g.field = systems.Field{Width: width, Height: height}
	if g.genetic != nil {
		g.genetic.SetTarget(g.rocketTarget())
		g.genetic.SetStart(g.rocketStart())
	}
}

// Field returns the current field size.
func (g *Game) Field() systems.Field { return g.field }

// DrawRequests returns the circles produced by the last tick. The slice is
// reused by the next tick.
func (g *Game) DrawRequests() []systems.DrawRequest { return g.draws }

// Target returns the rocket target in field coordinates, if the scenario has one.
func (g *Game) Target() (components.Position, bool) {
	if g.genetic == nil {
		return components.Position{}, false
	}
	return g.genetic.Params().Target, true
}

// Tick returns the number of ticks simulated since the last reset.
func (g *Game) Tick() int32 { return g.tick }

// Scenario returns the running scenario.
func (g *Game) Scenario() Scenario { return g.opts.Scenario }

// Population returns the number of live entities.
func (g *Game) Population() int { return g.world.Registry.Len() }

// World exposes the stores and region grid, mainly for tests and tools.
func (g *Game) World() *systems.World { return g.world }

// Paused reports whether Update is currently a no-op.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// TogglePause flips the pause state.
func (g *Game) TogglePause() { g.paused = !g.paused }

// StepsPerUpdate returns how many ticks each Update advances.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate changes the simulation speed multiplier, clamped to [1, 100].
func (g *Game) SetStepsPerUpdate(n int) { g.stepsPerUpdate = min(max(n, 1), 100) }

// Generation returns the completed generation count and the last generation's stats.
func (g *Game) Generation() (int, systems.GenerationStats) {
	if g.genetic == nil {
		return 0, systems.GenerationStats{}
	}
	return g.genetic.Generation(), g.lastGeneration
}

// MoveIndex returns the gene the rockets are currently playing.
func (g *Game) MoveIndex() int {
	if g.genetic == nil {
		return 0
	}
	return g.genetic.MoveIndex()
}

// MutationChance returns the rocket mutation probability.
func (g *Game) MutationChance() float64 {
	if g.genetic == nil {
		return 0
	}
	return g.genetic.Params().MutationChance
}

// SetMutationChance changes the rocket mutation probability for future generations.
func (g *Game) SetMutationChance(c float64) {
	if g.genetic != nil {
		g.genetic.SetMutationChance(c)
	}
}

// Perf returns the rolling performance statistics.
func (g *Game) Perf() telemetry.PerfStats { return g.perfCollector.Stats() }

// RecordFrame records frame timing for graphical drivers.
func (g *Game) RecordFrame() { g.perfCollector.RecordFrame() }

// Unload releases resources held by the game.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
