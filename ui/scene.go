package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noc/camera"
	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/systems"
)

// DrawScene draws every visible request as a filled circle. Request
// coordinates are draw coordinates; cam maps them to the window.
func DrawScene(reqs []systems.DrawRequest, cam *camera.Camera) {
	for _, r := range reqs {
		if !cam.IsVisible(r.X, r.Y, r.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(r.X, r.Y)
		radius := cam.Scale(r.Radius)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, r.Color)
		rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Fade(rl.Black, 0.4))
	}
}

// DrawTarget draws the rocket target marker. p is in field coordinates.
func DrawTarget(p components.Position, f systems.Field, cam *camera.Camera, c rl.Color) {
	x, y := cam.WorldToScreen(p.X, f.Height-p.Y)
	r := cam.Scale(12)
	arm := cam.Scale(16)
	rl.DrawCircleLines(int32(x), int32(y), r, c)
	rl.DrawLine(int32(x-arm), int32(y), int32(x+arm), int32(y), c)
	rl.DrawLine(int32(x), int32(y-arm), int32(x), int32(y+arm), c)
}
