package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Scenario   string
	Population int
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool

	// Rockets only
	Genetic      bool
	Generation   int
	MoveIndex    int
	BestDistance float64
	Fallback     string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("%s | Entities: %d", data.Scenario, data.Population),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	y := int32(75)
	if data.Genetic {
		rl.DrawText(
			fmt.Sprintf("Generation: %d | Move: %d | Best: %.1f", data.Generation, data.MoveIndex, data.BestDistance),
			10, y, 16, rl.LightGray,
		)
		y += 20
		if data.Fallback != "" {
			rl.DrawText("Selection fallback: "+data.Fallback, 10, y, 14, rl.Orange)
			y += 18
		}
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
