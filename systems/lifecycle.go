package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// DropParams holds the thresholds for removing entities.
type DropParams struct {
	OutsideMargin float32 // distance beyond the field edge
	RestSpeed     float32 // per-axis speed below which an entity is resting
	FloorMargin   float32 // how close to the floor a resting entity must be

	// Gravity is the per-tick downward acceleration magnitude, 0 without gravity.
	// A body settled on the floor under gravity never reaches zero vertical
	// speed: it hops by the rebound of a single tick's fall, at most Gravity/mass.
	Gravity float32
}

// DropSystem removes entities that left the field or came to rest on the floor.
type DropSystem struct {
	params DropParams
	toDrop []ecs.Entity
}

// NewDropSystem creates a drop system.
func NewDropSystem(params DropParams) *DropSystem {
	return &DropSystem{
		params: params,
		toDrop: make([]ecs.Entity, 0, 8),
	}
}

// Update removes qualifying entities from their region and the registry,
// which clears every component store. It returns the dropped entities; the
// slice is reused by the next call.
func (s *DropSystem) Update(w *World, f Field) []ecs.Entity {
	s.toDrop = s.toDrop[:0]
	w.Pos.ForEach(func(e ecs.Entity, pos components.Position) {
		if s.outside(pos, f) || s.resting(w, e, pos) {
			s.toDrop = append(s.toDrop, e)
		}
	})

	// Structural changes are not allowed during the query above.
	for _, e := range s.toDrop {
		if attr, ok := w.Attr.Get(e); ok {
			w.Regions.Remove(e, attr.Region)
		}
		if err := w.Registry.Drop(e); err != nil {
			slog.Warn("drop failed", "entity", e.ID(), "error", err)
		}
	}
	return s.toDrop
}

func (s *DropSystem) outside(pos components.Position, f Field) bool {
	m := s.params.OutsideMargin
	return pos.X < -m || pos.X > f.Width+m || pos.Y < -m || pos.Y > f.Height+m
}

func (s *DropSystem) resting(w *World, e ecs.Entity, pos components.Position) bool {
	vel, ok := w.Vel.Get(e)
	if !ok {
		return false
	}
	attr, _ := w.Attr.Get(e)
	if pos.Y-attr.Radius > s.params.FloorMargin {
		return false
	}
	if absFloat(vel.X) >= s.params.RestSpeed {
		return false
	}
	return absFloat(vel.Y) < s.params.RestSpeed || absFloat(vel.Y) <= s.hopLimit(attr.Mass)
}

// hopLimit is the largest vertical speed a floor body can have from one tick
// of gravity after rebounding at -1/mass.
func (s *DropSystem) hopLimit(mass float32) float32 {
	if s.params.Gravity <= 0 {
		return 0
	}
	if mass <= 0 {
		mass = 1
	}
	return s.params.Gravity / mass
}
