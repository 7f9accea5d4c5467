// Package term is a terminal display driver built on tcell. Each draw request
// becomes one cell, scaled from the field onto the terminal grid.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/noc/game"
	"github.com/pthm-cable/noc/systems"
)

const (
	bodyRune   = '●'
	targetRune = '+'
	frameTime  = 16 * time.Millisecond // ~60 FPS
)

// Driver renders a game onto a tcell screen and maps keys to game controls.
type Driver struct {
	screen tcell.Screen
	game   *game.Game
	hud    tcell.Style
	target tcell.Style
}

// New creates a driver. The screen must already be initialised; the caller
// calls Fini on it.
func New(screen tcell.Screen, g *game.Game) *Driver {
	return &Driver{
		screen: screen,
		game:   g,
		hud:    tcell.StyleDefault.Foreground(tcell.ColorYellow),
		target: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
}

// Run advances and draws the game every frame until the user quits, ctx is
// cancelled or maxTicks is reached (0 = unlimited).
func (d *Driver) Run(ctx context.Context, maxTicks int32) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !d.handleInput(ev) {
				return nil
			}

		case <-ticker.C:
			d.game.Update()
			d.Draw()
			if maxTicks > 0 && d.game.Tick() >= maxTicks {
				return nil
			}
		}
	}
}

// handleInput applies a terminal event. It returns false when the user quits.
func (d *Driver) handleInput(ev tcell.Event) bool {
	g := d.game
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				g.TogglePause()
			case '+', '=':
				g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
			case '-':
				g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
			case 'r':
				if err := g.Reset(); err != nil {
					slog.Error("reset failed", "error", err)
					return false
				}
			}
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

// Draw renders the HUD line and one cell per draw request.
func (d *Driver) Draw() {
	s := d.screen
	g := d.game
	s.Clear()

	cols, rows := s.Size()
	if cols < 1 || rows < 2 {
		s.Show()
		return
	}

	f := g.Field()
	for _, r := range g.DrawRequests() {
		col, row := cellFor(r.X, r.Y, f, cols, rows-1)
		c := r.Color
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		s.SetContent(col, row+1, bodyRune, nil, style)
	}

	if target, ok := g.Target(); ok {
		col, row := cellFor(target.X, f.Height-target.Y, f, cols, rows-1)
		s.SetContent(col, row+1, targetRune, nil, d.target)
	}

	status := fmt.Sprintf("%s | tick %d | %dx | entities %d", g.Scenario(), g.Tick(), g.StepsPerUpdate(), g.Population())
	if n, last := g.Generation(); g.Scenario() == game.ScenarioRockets {
		status += fmt.Sprintf(" | gen %d best %.1f", n, last.BestDistance)
	}
	if g.Paused() {
		status += " | PAUSED"
	}
	drawText(s, 0, 0, cols, status, d.hud)

	s.Show()
}

// cellFor maps screen-space coordinates onto a cols x rows grid.
func cellFor(x, y float32, f systems.Field, cols, rows int) (int, int) {
	col, row := 0, 0
	if f.Width > 0 {
		col = int(x / f.Width * float32(cols))
	}
	if f.Height > 0 {
		row = int(y / f.Height * float32(rows))
	}
	return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxWidth {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
