package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"

	"github.com/pthm-cable/noc/config"
	"github.com/pthm-cable/noc/game"
	"github.com/pthm-cable/noc/ui"
	"github.com/pthm-cable/noc/ui/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// run parses args, validates the setup and only then starts the profiler, so
// every return path stops it and flushes the profile.
func run(args []string) error {
	fs := flag.NewFlagSet("noc", flag.ContinueOnError)
	scenarioName := fs.String("scenario", "bouncy", "Scenario to run: bouncy, walker or rockets")
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Run without graphics")
	terminal := fs.Bool("terminal", false, "Render to the terminal instead of a window")
	logStats := fs.Bool("log-stats", false, "Output stats via slog")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := fs.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := fs.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := fs.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	cpuProfile := fs.String("cpuprofile", "", "Write a CPU profile to this directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Terminal mode owns stdout, so logs go to stderr there.
	logOut := os.Stdout
	if *terminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	scenario, err := game.ParseScenario(*scenarioName)
	if err != nil {
		return err
	}

	rngSeed := uint64(*seed)
	if *seed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := game.Options{
		Scenario:       scenario,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	switch {
	case *headless:
		return runHeadless(cfg, opts, int32(*maxTicks))
	case *terminal:
		return runTerminal(cfg, opts, int32(*maxTicks))
	default:
		return runWindow(cfg, opts, int32(*maxTicks))
	}
}

// runHeadless is a pure CPU simulation with no display.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int32) error {
	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"scenario", opts.Scenario,
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.Err() == nil {
		g.Update()
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
	return nil
}

// runTerminal draws the scene as text cells.
func runTerminal(cfg *config.Config, opts game.Options, maxTicks int32) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := term.New(screen, g).Run(ctx, maxTicks); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runWindow opens a raylib window with the HUD and control panel.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int32) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Nature of Code: "+opts.Scenario.String())
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	app := ui.NewApp(g, opts.Scenario.String())
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
	return nil
}
