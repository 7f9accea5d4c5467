package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/noc/components"
)

// Two overlapping bodies in one bucket, a third overlapping one of them from
// the neighbouring bucket.
func TestCollisionOnlyWithinBucket(t *testing.T) {
	w := newTestWorld()
	a := spawnBody(t, w, testField, components.Position{X: 254, Y: 100}, components.Velocity{X: 1}, 2.5, 1)
	b := spawnBody(t, w, testField, components.Position{X: 255, Y: 100}, components.Velocity{X: -1}, 2.5, 1)
	c := spawnBody(t, w, testField, components.Position{X: 257, Y: 100}, components.Velocity{Y: 1}, 2.5, 1)

	attrA, _ := w.Attr.Get(a)
	attrB, _ := w.Attr.Get(b)
	attrC, _ := w.Attr.Get(c)
	if attrA.Region != attrB.Region || attrC.Region == attrA.Region {
		t.Fatalf("regions a=%d b=%d c=%d, want a==b!=c", attrA.Region, attrB.Region, attrC.Region)
	}

	pairs := NewCollisionSystem(1e-4).Detect(w)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(pairs), pairs)
	}
	got := pairs[0]
	if !(got.A == a && got.B == b) && !(got.A == b && got.B == a) {
		t.Errorf("pair = %+v, want {a, b}", got)
	}
}

func TestCollisionIgnoresDistantPairs(t *testing.T) {
	w := newTestWorld()
	spawnBody(t, w, testField, components.Position{X: 200, Y: 100}, components.Velocity{X: 1}, 2, 1)
	spawnBody(t, w, testField, components.Position{X: 210, Y: 100}, components.Velocity{X: -1}, 2, 1)

	if pairs := NewCollisionSystem(1e-4).Detect(w); len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0", len(pairs))
	}
}

func TestCollisionSwapsHeadingsKeepsSpeed(t *testing.T) {
	tests := []struct {
		name   string
		va, vb components.Velocity
	}{
		{"head on", components.Velocity{X: 3}, components.Velocity{X: -1}},
		{"perpendicular", components.Velocity{X: 2, Y: 0}, components.Velocity{X: 0, Y: 5}},
		{"oblique", components.Velocity{X: 1.5, Y: -2}, components.Velocity{X: -4, Y: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			a := spawnBody(t, w, testField, components.Position{X: 300, Y: 200}, tt.va, 5, 1)
			b := spawnBody(t, w, testField, components.Position{X: 303, Y: 201}, tt.vb, 5, 1)

			pairs := NewCollisionSystem(1e-4).Update(w)
			if len(pairs) != 1 {
				t.Fatalf("got %d pairs, want 1", len(pairs))
			}

			va, _ := w.Vel.Get(a)
			vb, _ := w.Vel.Get(b)
			if !approxEqual(va.Magnitude(), tt.va.Magnitude(), 1e-4) {
				t.Errorf("speed a = %v, want %v", va.Magnitude(), tt.va.Magnitude())
			}
			if !approxEqual(vb.Magnitude(), tt.vb.Magnitude(), 1e-4) {
				t.Errorf("speed b = %v, want %v", vb.Magnitude(), tt.vb.Magnitude())
			}
			if !sameAngle(va.Theta(), tt.vb.Theta()) {
				t.Errorf("heading a = %v, want %v", va.Theta(), tt.vb.Theta())
			}
			if !sameAngle(vb.Theta(), tt.va.Theta()) {
				t.Errorf("heading b = %v, want %v", vb.Theta(), tt.va.Theta())
			}
		})
	}
}

func sameAngle(a, b float32) bool {
	d := math.Mod(float64(a-b), 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d < 1e-4 || 2*math.Pi-d < 1e-4
}
