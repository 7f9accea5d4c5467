package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// Pair is an unordered colliding pair. A always has the lower entity ID.
type Pair struct {
	A, B ecs.Entity
}

// CollisionSystem detects overlapping entities within a region and swaps
// their headings.
type CollisionSystem struct {
	tolerance float32
	pairs     []Pair
}

// NewCollisionSystem creates a collision system.
func NewCollisionSystem(tolerance float32) *CollisionSystem {
	return &CollisionSystem{
		tolerance: tolerance,
		pairs:     make([]Pair, 0, 16),
	}
}

// Detect collects colliding pairs. Only entities sharing a bucket are tested.
// The returned slice is reused by the next call.
func (s *CollisionSystem) Detect(w *World) []Pair {
	s.pairs = s.pairs[:0]
	w.Pos.ForEach(func(e ecs.Entity, pos components.Position) {
		attr, ok := w.Attr.Get(e)
		if !ok {
			return
		}
		for _, other := range w.Regions.Bucket(attr.Region) {
			// Each unordered pair is seen from both sides; keep one.
			if other.ID() <= e.ID() {
				continue
			}
			opos, ok := w.Pos.Get(other)
			if !ok {
				continue
			}
			oattr, ok := w.Attr.Get(other)
			if !ok {
				continue
			}
			rad := attr.Radius + oattr.Radius
			if distanceSq(pos.X, pos.Y, opos.X, opos.Y)-rad*rad < s.tolerance {
				s.pairs = append(s.pairs, Pair{A: e, B: other})
			}
		}
	})
	return s.pairs
}

// Update detects collisions and then exchanges the headings of every pair,
// keeping each entity's speed. Pairs are applied in order after detection.
func (s *CollisionSystem) Update(w *World) []Pair {
	pairs := s.Detect(w)
	for _, pr := range pairs {
		va := w.Vel.GetMut(pr.A)
		vb := w.Vel.GetMut(pr.B)
		if va == nil || vb == nil {
			continue
		}
		ta, tb := va.Theta(), vb.Theta()
		*va = va.WithTheta(tb)
		*vb = vb.WithTheta(ta)
	}
	return pairs
}
