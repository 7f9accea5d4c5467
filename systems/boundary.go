package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// BoundaryParams holds wall contact tolerances and friction multipliers.
type BoundaryParams struct {
	LowEpsilon      float32
	HighEpsilon     float32
	WallFriction    float32
	FloorFriction   float32
	CeilingFriction float32
}

// BoundarySystem keeps entities inside the field and bounces them off its edges.
type BoundarySystem struct {
	params BoundaryParams
}

// NewBoundarySystem creates a boundary system.
func NewBoundarySystem(params BoundaryParams) *BoundarySystem {
	return &BoundarySystem{params: params}
}

// Update clamps every entity with position, velocity and attributes into
// [radius, extent-radius] and applies the contact response.
func (s *BoundarySystem) Update(w *World, f Field) {
	p := s.params
	w.Pos.ForEachMut(func(e ecs.Entity, pos *components.Position) {
		vel := w.Vel.GetMut(e)
		attr := w.Attr.GetMut(e)
		if vel == nil || attr == nil {
			return
		}
		r := attr.Radius
		k := rebound(attr.Mass)

		pos.X = clampFloat(pos.X, r, f.Width-r)
		pos.Y = clampFloat(pos.Y, r, f.Height-r)

		if pos.X-r < p.LowEpsilon {
			vel.X *= k
			vel.Y *= p.WallFriction
		}
		if pos.Y-r < p.LowEpsilon {
			vel.Y *= k
			vel.X *= p.FloorFriction
		}
		if pos.X > f.Width-r-p.HighEpsilon {
			vel.X *= k
			vel.Y *= p.WallFriction
		}
		if pos.Y > f.Height-r-p.HighEpsilon {
			vel.Y *= k
			vel.X *= p.CeilingFriction
		}

		w.Regions.Place(e, attr, *pos, f)
	})
}
