package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the value the controls panel edits.
type ControlsState struct {
	Paused         bool
	Speed          int
	MutationChance float64
	Genetic        bool // show the mutation slider
}

// ControlsAction reports what the user did this frame.
type ControlsAction struct {
	TogglePause bool
	Reset       bool
	Speed       int
	Mutation    float64
}

// ControlsPanel renders the raygui panel with pause, speed, mutation and reset.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(state ControlsState) ControlsAction {
	act := ControlsAction{Speed: state.Speed, Mutation: state.MutationChance}
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := r.Theme.Padding
	height := int32(150)
	if state.Genetic {
		height += 40
	}
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + pad)
	y := c.y + pad
	inner := float32(c.width - 2*pad)

	y = r.DrawSectionHeader(c.x+pad, y, "Controls")

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner/2 - 4, Height: 24}, label) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + inner/2 + 4, Y: float32(y), Width: inner/2 - 4, Height: 24}, "Reset") {
		act.Reset = true
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: inner - 30, Height: 16},
		"", "",
		float32(state.Speed), 1, 20,
	)
	act.Speed = int(speed + 0.5)
	y += 26

	if state.Genetic {
		rl.DrawText(fmt.Sprintf("Mutation: %.2f", state.MutationChance), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		y += 16
		m := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: inner - 30, Height: 16},
			"", "",
			float32(state.MutationChance), 0, 1,
		)
		act.Mutation = float64(m)
	}
	return act
}
