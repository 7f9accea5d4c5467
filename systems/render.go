package systems

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// DrawRequest is one circle for a display driver. X and Y are screen
// coordinates with the origin at the top-left corner.
type DrawRequest struct {
	X, Y   float32
	Radius float32
	Color  color.RGBA
}

// DrawRequests appends a request for every entity with a position and
// attributes to dst, flipping Y so the floor is drawn at the bottom.
func DrawRequests(dst []DrawRequest, w *World, f Field) []DrawRequest {
	dst = dst[:0]
	w.Pos.ForEach(func(e ecs.Entity, pos components.Position) {
		attr, ok := w.Attr.Get(e)
		if !ok {
			return
		}
		dst = append(dst, DrawRequest{
			X:      pos.X,
			Y:      f.Height - pos.Y,
			Radius: attr.Radius,
			Color:  attr.Color,
		})
	})
	return dst
}
