package ui

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noc/camera"
	"github.com/pthm-cable/noc/game"
)

const controlsLegend = "SPACE pause | +/- speed | R reset | TAB controls | wheel zoom | RMB pan | C recentre"

// App drives a game inside a raylib window. The window must be open before
// NewApp is called.
type App struct {
	game     *game.Game
	hud      *HUD
	controls *ControlsPanel
	camera   *camera.Camera
	theme    Theme
	title    string
}

// NewApp creates a window driver for g.
func NewApp(g *game.Game, title string) *App {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	return &App{
		camera:   camera.New(w, h, w, h),
		game:     g,
		hud:      NewHUD(),
		controls: NewControlsPanel(int32(rl.GetScreenWidth())-230, 10, 220),
		theme:    DefaultTheme(),
		title:    title,
	}
}

// Update handles input and window size, then advances the game.
func (a *App) Update() {
	g := a.game
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	g.SetField(float32(w), float32(h))
	a.camera.Resize(float32(w), float32(h), float32(w), float32(h))
	a.controls.SetPosition(int32(w)-230, 10)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		a.camera.ZoomAt(m.X, m.Y, 1+0.1*wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.camera.Pan(-d.X, -d.Y)
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		g.TogglePause()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
	case rl.IsKeyPressed(rl.KeyR):
		a.reset()
	case rl.IsKeyPressed(rl.KeyTab):
		a.controls.Toggle()
	case rl.IsKeyPressed(rl.KeyC):
		a.camera.Reset()
	}

	g.Update()
	g.RecordFrame()
}

// Draw renders the scene, HUD and controls, applying any control changes.
func (a *App) Draw() {
	g := a.game
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(a.theme.Background)

	DrawScene(g.DrawRequests(), a.camera)
	if target, ok := g.Target(); ok {
		DrawTarget(target, g.Field(), a.camera, a.theme.TargetColor)
	}

	gen, last := g.Generation()
	data := HUDData{
		Title:      a.title,
		Scenario:   g.Scenario().String(),
		Population: g.Population(),
		Tick:       g.Tick(),
		Speed:      g.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Paused:     g.Paused(),
		Generation: gen,
		MoveIndex:  g.MoveIndex(),
	}
	if _, ok := g.Target(); ok {
		data.Genetic = true
		data.BestDistance = last.BestDistance
		if last.Fallback != nil {
			data.Fallback = last.Fallback.Error()
		}
	}
	a.hud.Draw(data)
	a.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)

	act := a.controls.Draw(ControlsState{
		Paused:         g.Paused(),
		Speed:          g.StepsPerUpdate(),
		MutationChance: g.MutationChance(),
		Genetic:        data.Genetic,
	})
	if act.TogglePause {
		g.TogglePause()
	}
	if act.Speed != g.StepsPerUpdate() {
		g.SetStepsPerUpdate(act.Speed)
	}
	if data.Genetic && math.Abs(act.Mutation-g.MutationChance()) > 1e-4 {
		g.SetMutationChance(act.Mutation)
	}
	if act.Reset {
		a.reset()
	}
}

func (a *App) reset() {
	if err := a.game.Reset(); err != nil {
		slog.Error("reset failed", "error", err)
	}
}
