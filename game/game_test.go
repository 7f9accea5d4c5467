package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/config"
	"github.com/pthm-cable/noc/systems"
	"github.com/pthm-cable/noc/telemetry"
)

func newTestGame(t *testing.T, scenario Scenario, mutate func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	g, err := NewGameWithOptions(cfg, Options{Scenario: scenario, Seed: 42})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestParseScenario(t *testing.T) {
	tests := []struct {
		in      string
		want    Scenario
		wantErr bool
	}{
		{"bouncy", ScenarioBouncy, false},
		{"Walker", ScenarioWalker, false},
		{" rockets ", ScenarioRockets, false},
		{"boids", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScenario(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownScenario) {
					t.Errorf("err = %v, want ErrUnknownScenario", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseScenario(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestCreateBodyRejectsInvalid(t *testing.T) {
	g := newTestGame(t, ScenarioWalker, nil)
	before := g.Population()

	tests := []struct {
		name string
		spec BodySpec
		want error
	}{
		{"zero mass", BodySpec{Radius: 5, Mass: 0}, ErrInvalidMass},
		{"negative mass", BodySpec{Radius: 5, Mass: -1}, ErrInvalidMass},
		{"nan mass", BodySpec{Radius: 5, Mass: float32(math.NaN())}, ErrInvalidMass},
		{"zero radius", BodySpec{Radius: 0, Mass: 1}, ErrInvalidRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.CreateBody(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if g.Population() != before {
		t.Errorf("population changed from %d to %d", before, g.Population())
	}
}

func TestBouncyKeepsPopulation(t *testing.T) {
	g := newTestGame(t, ScenarioBouncy, nil)
	want := config.Default().Bouncy.Population

	for tick := 0; tick < 600; tick++ {
		g.Step()
		if g.Population() != want {
			t.Fatalf("tick %d: population %d, want %d", tick, g.Population(), want)
		}
		if e, ok := g.World().Regions.Consistent(g.World(), g.Field()); !ok {
			t.Fatalf("tick %d: entity %d in wrong region", tick, e.ID())
		}
		if n := len(g.DrawRequests()); n != want {
			t.Fatalf("tick %d: %d draw requests, want %d", tick, n, want)
		}
	}
}

func TestBouncyDropsRestingBallsAndRefills(t *testing.T) {
	var drops int
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 100
	g, err := NewGameWithOptions(cfg, Options{
		Scenario:      ScenarioBouncy,
		Seed:          42,
		StatsCallback: func(s telemetry.WindowStats) { drops += s.Drops },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	for i := 0; i < 6000; i++ {
		g.Step()
	}
	if drops < cfg.Bouncy.Population {
		t.Errorf("only %d balls dropped in 6000 ticks, want at least %d", drops, cfg.Bouncy.Population)
	}
	if g.Population() != cfg.Bouncy.Population {
		t.Errorf("population %d after refills, want %d", g.Population(), cfg.Bouncy.Population)
	}
}

func TestRocketsRegenerate(t *testing.T) {
	var gens []systems.GenerationStats
	cfg := config.Default()
	cfg.Rockets.TicksPerMove = 2
	g, err := NewGameWithOptions(cfg, Options{
		Scenario:           ScenarioRockets,
		Seed:               7,
		GenerationCallback: func(s systems.GenerationStats) { gens = append(gens, s) },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	// Ten moves of two ticks each, then one tick to notice the end.
	for i := 0; i < components.GenomeLength*2+1; i++ {
		g.Step()
	}
	if n, _ := g.Generation(); n != 1 {
		t.Fatalf("generation = %d, want 1", n)
	}
	if len(gens) != 1 || gens[0].Agents != cfg.Rockets.Population {
		t.Fatalf("callbacks = %+v", gens)
	}

	start := components.Position{X: g.Field().Width / 2, Y: 0}
	g.World().Pos.ForEach(func(_ ecs.Entity, p components.Position) {
		if p != start {
			t.Errorf("agent at %+v after regeneration, want %+v", p, start)
		}
	})
	if g.Population() != cfg.Rockets.Population {
		t.Errorf("population = %d, want %d", g.Population(), cfg.Rockets.Population)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newTestGame(t, ScenarioBouncy, nil)
	b := newTestGame(t, ScenarioBouncy, nil)
	for i := 0; i < 200; i++ {
		a.Step()
		b.Step()
	}
	da, db := a.DrawRequests(), b.DrawRequests()
	if len(da) != len(db) {
		t.Fatalf("draw counts differ: %d vs %d", len(da), len(db))
	}
	for i := range da {
		if da[i] != db[i] {
			t.Fatalf("request %d differs: %+v vs %+v", i, da[i], db[i])
		}
	}
}

func TestPauseAndSpeed(t *testing.T) {
	g := newTestGame(t, ScenarioWalker, nil)
	g.SetPaused(true)
	g.Update()
	if g.Tick() != 0 {
		t.Errorf("paused update advanced to tick %d", g.Tick())
	}

	g.TogglePause()
	g.SetStepsPerUpdate(5)
	g.Update()
	if g.Tick() != 5 {
		t.Errorf("tick = %d after one update at speed 5", g.Tick())
	}

	g.SetStepsPerUpdate(0)
	if g.StepsPerUpdate() != 1 {
		t.Errorf("speed clamped to %d, want 1", g.StepsPerUpdate())
	}
}

func TestSetFieldMovesTarget(t *testing.T) {
	g := newTestGame(t, ScenarioRockets, nil)
	g.SetField(800, 600)

	target, ok := g.Target()
	if !ok {
		t.Fatal("rockets scenario has no target")
	}
	if target.X != 400 || target.Y != 600 {
		t.Errorf("target = %+v, want (400, 600)", target)
	}

	if _, ok := newTestGame(t, ScenarioBouncy, nil).Target(); ok {
		t.Error("bouncy scenario reported a target")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	g := newTestGame(t, ScenarioBouncy, nil)
	for i := 0; i < 50; i++ {
		g.Step()
	}
	if err := g.Reset(); err != nil {
		t.Fatal(err)
	}
	if g.Tick() != 0 || g.Population() != config.Default().Bouncy.Population {
		t.Errorf("after reset tick=%d population=%d", g.Tick(), g.Population())
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 10
	cfg.Rockets.TicksPerMove = 1

	g, err := NewGameWithOptions(cfg, Options{
		Scenario:      ScenarioRockets,
		Seed:          1,
		OutputDir:     dir,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		g.Step()
	}
	g.Unload()

	if len(windows) != 4 {
		t.Errorf("got %d stats windows, want 4", len(windows))
	}
	for _, name := range []string{"telemetry.csv", "perf.csv", "generations.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
