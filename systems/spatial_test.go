package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

func TestRegionsCellInBounds(t *testing.T) {
	g := NewRegions(10, 10, 10)
	tests := []struct {
		name string
		pos  components.Position
	}{
		{"origin", components.Position{X: 0, Y: 0}},
		{"centre", components.Position{X: 320, Y: 240}},
		{"far corner", components.Position{X: 640, Y: 480}},
		{"negative", components.Position{X: -1e6, Y: -50}},
		{"huge", components.Position{X: 1e30, Y: 1e30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, idx := g.Cell(tt.pos, testField)
			if idx < 0 || idx >= g.Len() {
				t.Fatalf("index %d out of [0, %d)", idx, g.Len())
			}
			if row < 1 || row > 9 || col < 1 || col > 9 {
				t.Errorf("row/col = %d/%d, want within [1, 9]", row, col)
			}
		})
	}
}

func TestRegionsCellFormula(t *testing.T) {
	g := NewRegions(10, 10, 10)
	// x/W*10 = 5.5 -> col 5, y/H*10 = 2.5 -> row 2
	row, col, idx := g.Cell(components.Position{X: 352, Y: 120}, testField)
	if row != 2 || col != 5 || idx != 25 {
		t.Errorf("Cell = (%d, %d, %d), want (2, 5, 25)", row, col, idx)
	}
}

func TestRegionsPlaceMovesBetweenBuckets(t *testing.T) {
	w := newTestWorld()
	e := w.Registry.Next()
	attr := components.Attributes{Radius: 1}

	w.Regions.Place(e, &attr, components.Position{X: 100, Y: 100}, testField)
	first := attr.Region
	w.Regions.Place(e, &attr, components.Position{X: 500, Y: 400}, testField)

	if attr.Region == first {
		t.Fatalf("region unchanged at %d", first)
	}
	for _, other := range w.Regions.Bucket(first) {
		if other == e {
			t.Errorf("entity still in old bucket %d", first)
		}
	}
	found := 0
	for i := 0; i < w.Regions.Len(); i++ {
		for _, other := range w.Regions.Bucket(i) {
			if other == e {
				found++
			}
		}
	}
	if found != 1 {
		t.Errorf("entity in %d buckets, want 1", found)
	}
}

func TestRegionsStayConsistentOverTicks(t *testing.T) {
	w := newTestWorld()
	integ := NewIntegrationSystem(25)
	bound := NewBoundarySystem(testBoundary)

	for i := 0; i < 20; i++ {
		spawnBody(t, w, testField,
			components.Position{X: float32(20 + i*30), Y: float32(400 - i*15)},
			components.Velocity{X: float32(i%7) - 3, Y: float32(i%5) - 2},
			10, 1.2)
	}

	for tick := 0; tick < 300; tick++ {
		w.Acc.ForEachMut(func(_ ecs.Entity, a *components.Acceleration) { a.Y = -0.9 })
		integ.Update(w, testField)
		if e, ok := w.Regions.Consistent(w, testField); !ok {
			t.Fatalf("tick %d after integration: entity %d in wrong bucket", tick, e.ID())
		}
		bound.Update(w, testField)
		if e, ok := w.Regions.Consistent(w, testField); !ok {
			t.Fatalf("tick %d after boundary: entity %d in wrong bucket", tick, e.ID())
		}
	}
}
