package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// Field is the size of the simulation area. Drivers may change it every tick.
type Field struct {
	Width, Height float32
}

// Diagonal returns the length of the field's diagonal.
func (f Field) Diagonal() float32 {
	return float32(math.Hypot(float64(f.Width), float64(f.Height)))
}

// IntegrationSystem applies acceleration to velocity and velocity to position.
type IntegrationSystem struct {
	limit float32
}

// NewIntegrationSystem creates an integration system clamping each velocity
// axis to [-limit, limit].
func NewIntegrationSystem(limit float32) *IntegrationSystem {
	return &IntegrationSystem{limit: limit}
}

// Update runs one integration pass.
func (s *IntegrationSystem) Update(w *World, f Field) {
	w.Acc.ForEachMut(func(e ecs.Entity, acc *components.Acceleration) {
		vel := w.Vel.GetMut(e)
		if vel == nil {
			return
		}
		if m, ok := w.Mass.Get(e); ok && m.Value > 0 {
			vel.X /= m.Value
			vel.Y /= m.Value
		}
		vel.X = clampFloat(vel.X+acc.X, -s.limit, s.limit)
		vel.Y = clampFloat(vel.Y+acc.Y, -s.limit, s.limit)
		*acc = components.Acceleration{}
	})

	w.Pos.ForEachMut(func(e ecs.Entity, pos *components.Position) {
		vel, ok := w.Vel.Get(e)
		if !ok {
			return
		}
		pos.X += vel.X
		pos.Y += vel.Y

		if attr := w.Attr.GetMut(e); attr != nil {
			w.Regions.Place(e, attr, *pos, f)
		}
	})
}
