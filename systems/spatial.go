package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// Regions partitions the field into a fixed rows x cols grid of entity buckets.
// An entity's bucket is recorded in its Attributes and must be refreshed by
// Place whenever its position changes.
type Regions struct {
	rows    int
	cols    int
	scale   float32
	buckets [][]ecs.Entity
}

// NewRegions creates an empty grid.
func NewRegions(rows, cols int, scale float32) *Regions {
	buckets := make([][]ecs.Entity, rows*cols)
	for i := range buckets {
		buckets[i] = make([]ecs.Entity, 0, 4)
	}
	return &Regions{
		rows:    rows,
		cols:    cols,
		scale:   scale,
		buckets: buckets,
	}
}

// Len returns the number of buckets.
func (g *Regions) Len() int {
	return len(g.buckets)
}

// Cell computes the row, column and bucket index for a position.
func (g *Regions) Cell(p components.Position, f Field) (row, col, idx int) {
	col = clampInt(scaledCell(p.X, f.Width, g.scale), 1, g.cols-1)
	row = clampInt(scaledCell(p.Y, f.Height, g.scale), 1, g.rows-1)
	idx = clampInt(col+row*g.cols, 0, len(g.buckets)-1)
	return row, col, idx
}

func scaledCell(v, extent, scale float32) int {
	if extent <= 0 {
		return 0
	}
	c := math.Floor(float64(v / extent * scale))
	if math.IsNaN(c) {
		return 0
	}
	// Keep the float to int conversion in range for far out-of-field positions.
	return int(max(min(c, math.MaxInt32), math.MinInt32))
}

// Place moves e from its recorded bucket into the one matching pos and
// updates attr to match.
func (g *Regions) Place(e ecs.Entity, attr *components.Attributes, pos components.Position, f Field) {
	row, col, idx := g.Cell(pos, f)
	if idx == attr.Region && g.contains(idx, e) {
		attr.Row, attr.Column = row, col
		return
	}
	g.Remove(e, attr.Region)
	g.buckets[idx] = append(g.buckets[idx], e)
	attr.Row, attr.Column, attr.Region = row, col, idx
}

// Remove deletes e from bucket idx. It is a no-op if e is not there.
func (g *Regions) Remove(e ecs.Entity, idx int) {
	if idx < 0 || idx >= len(g.buckets) {
		return
	}
	b := g.buckets[idx]
	for i, other := range b {
		if other == e {
			last := len(b) - 1
			b[i] = b[last]
			g.buckets[idx] = b[:last]
			return
		}
	}
}

// Bucket returns the entities in bucket idx. The slice is owned by the grid
// and is only valid until the next Place or Remove.
func (g *Regions) Bucket(idx int) []ecs.Entity {
	if idx < 0 || idx >= len(g.buckets) {
		return nil
	}
	return g.buckets[idx]
}

// Clear empties every bucket.
func (g *Regions) Clear() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
}

// Consistent reports whether every entity with a position and attributes sits
// in exactly the bucket its position maps to. The first offender is returned.
func (g *Regions) Consistent(w *World, f Field) (ecs.Entity, bool) {
	var bad ecs.Entity
	ok := true
	w.Attr.ForEach(func(e ecs.Entity, attr components.Attributes) {
		if !ok {
			return
		}
		pos, has := w.Pos.Get(e)
		if !has {
			return
		}
		_, _, idx := g.Cell(pos, f)
		if idx != attr.Region || !g.contains(idx, e) {
			bad, ok = e, false
		}
	})
	return bad, ok
}

func (g *Regions) contains(idx int, e ecs.Entity) bool {
	for _, other := range g.buckets[idx] {
		if other == e {
			return true
		}
	}
	return false
}
