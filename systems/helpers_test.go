package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

var testField = Field{Width: 640, Height: 480}

func newTestWorld() *World {
	return NewWorld(10, 10, 10)
}

// spawnBody creates an entity with the full physics component set and
// places it in the region grid.
func spawnBody(t *testing.T, w *World, f Field, pos components.Position, vel components.Velocity, radius, mass float32) ecs.Entity {
	t.Helper()
	e := w.Registry.Next()
	attr := components.Attributes{Mass: mass, Radius: radius}
	w.Regions.Place(e, &attr, pos, f)

	for _, err := range []error{
		w.Pos.Add(e, pos),
		w.Vel.Add(e, vel),
		w.Acc.Add(e, components.Acceleration{}),
		w.Attr.Add(e, attr),
	} {
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}
	return e
}

func approxEqual(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}
