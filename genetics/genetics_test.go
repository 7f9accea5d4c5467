package genetics

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/noc/components"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestCrossoverTakesEachGeneFromAParent(t *testing.T) {
	rng := newRNG(7)
	for trial := 0; trial < 200; trial++ {
		a := RandomDNA(rng)
		b := RandomDNA(rng)
		child := Crossover(a, b, rng)
		for i := range child {
			if child[i] != a[i] && child[i] != b[i] {
				t.Fatalf("trial %d gene %d = %d, want %d or %d", trial, i, child[i], a[i], b[i])
			}
		}
	}
}

func TestCrossoverDeterministicForSeed(t *testing.T) {
	a := components.DNA{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := components.DNA{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	first := Crossover(a, b, newRNG(42))
	second := Crossover(a, b, newRNG(42))
	if first != second {
		t.Errorf("same seed produced %v and %v", first, second)
	}
}

func TestMutateChangesExactlyOneGene(t *testing.T) {
	rng := newRNG(3)
	for trial := 0; trial < 500; trial++ {
		orig := RandomDNA(rng)
		dna := orig
		idx := Mutate(&dna, 1.0, rng)
		if idx < 0 {
			t.Fatalf("trial %d: chance 1.0 did not mutate", trial)
		}

		diff := 0
		for i := range dna {
			if dna[i] != orig[i] {
				diff++
			}
			if Move(dna[i]) >= NumMoves {
				t.Fatalf("trial %d gene %d = %d outside move bank", trial, i, dna[i])
			}
		}
		if diff != 1 {
			t.Fatalf("trial %d: %d genes differ, want 1", trial, diff)
		}
		if dna[idx] == orig[idx] {
			t.Fatalf("trial %d: reported index %d unchanged", trial, idx)
		}
	}
}

func TestMutateZeroChance(t *testing.T) {
	rng := newRNG(3)
	orig := RandomDNA(rng)
	dna := orig
	for i := 0; i < 100; i++ {
		if idx := Mutate(&dna, 0, rng); idx != -1 {
			t.Fatalf("chance 0 mutated index %d", idx)
		}
	}
	if dna != orig {
		t.Errorf("dna changed: %v -> %v", orig, dna)
	}
}

func TestWeight(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"on target", 0, 100},
		{"halfway", 50, 50},
		{"at max", 100, 0},
		{"beyond max", 250, 0},
		{"negative distance clamps", -10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weight(tt.distance, 100, 100); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Weight(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	got := Distance(components.Position{X: 0, Y: 0}, components.Position{X: 3, Y: 4})
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestChooseOneNeverPicksZeroWeight(t *testing.T) {
	rng := newRNG(11)
	weights := []float64{0, 3, 0, 1, 0}
	for i := 0; i < 1000; i++ {
		idx, err := ChooseOne(weights, rng)
		if err != nil {
			t.Fatalf("ChooseOne: %v", err)
		}
		if weights[idx] == 0 {
			t.Fatalf("picked zero-weight index %d", idx)
		}
	}
}

func TestChooseOneErrors(t *testing.T) {
	rng := newRNG(1)
	tests := []struct {
		name    string
		weights []float64
		want    error
	}{
		{"empty", nil, ErrZeroWeights},
		{"all zero", []float64{0, 0, 0}, ErrZeroWeights},
		{"negative", []float64{1, -1}, ErrNegativeWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ChooseOne(tt.weights, rng); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSelectParentsSingleNonZeroWeight(t *testing.T) {
	weights := make([]float64, 10)
	weights[0] = 10

	rng := newRNG(5)
	for trial := 0; trial < 100; trial++ {
		sel, err := SelectParents(weights, rng, 16)
		if err != nil {
			t.Fatalf("SelectParents: %v", err)
		}
		if sel.A != 0 {
			t.Fatalf("first parent = %d, want 0", sel.A)
		}
		if sel.B == sel.A || sel.B < 0 || sel.B >= len(weights) {
			t.Fatalf("second parent = %d, want distinct valid index", sel.B)
		}
		if !errors.Is(sel.Fallback, ErrNoDistinctParent) {
			t.Fatalf("fallback = %v, want ErrNoDistinctParent", sel.Fallback)
		}
	}
}

func TestSelectParentsZeroWeightsFallsBackToUniform(t *testing.T) {
	weights := make([]float64, 4)
	rng := newRNG(9)

	seen := map[int]bool{}
	for trial := 0; trial < 200; trial++ {
		sel, err := SelectParents(weights, rng, 16)
		if err != nil {
			t.Fatalf("SelectParents: %v", err)
		}
		if sel.A == sel.B {
			t.Fatalf("parents not distinct: %d", sel.A)
		}
		if !errors.Is(sel.Fallback, ErrZeroWeights) {
			t.Fatalf("fallback = %v, want ErrZeroWeights", sel.Fallback)
		}
		seen[sel.A] = true
	}
	if len(seen) != len(weights) {
		t.Errorf("uniform fallback reached %d of %d agents", len(seen), len(weights))
	}
}

func TestSelectParentsWeighted(t *testing.T) {
	rng := newRNG(13)
	sel, err := SelectParents([]float64{5, 5, 0}, rng, 64)
	if err != nil {
		t.Fatalf("SelectParents: %v", err)
	}
	if sel.Fallback != nil {
		t.Errorf("unexpected fallback %v", sel.Fallback)
	}
	if sel.A == 2 || sel.B == 2 || sel.A == sel.B {
		t.Errorf("got parents %d, %d", sel.A, sel.B)
	}
}

func TestSelectParentsTooSmall(t *testing.T) {
	_, err := SelectParents([]float64{1}, newRNG(1), 4)
	if !errors.Is(err, ErrPopulationTooSmall) {
		t.Errorf("err = %v, want ErrPopulationTooSmall", err)
	}
}

func TestMoveAccel(t *testing.T) {
	vel := components.Velocity{X: 4, Y: -2}
	tests := []struct {
		move Move
		want components.Acceleration
	}{
		{MoveCoast, components.Acceleration{}},
		{MoveUp, components.Acceleration{Y: 1}},
		{MoveDown, components.Acceleration{Y: -1}},
		{MoveLeft, components.Acceleration{X: -1}},
		{MoveRight, components.Acceleration{X: 1}},
		{MoveBrake, components.Acceleration{X: -2, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.move.String(), func(t *testing.T) {
			if got := tt.move.Accel(vel, 1); got != tt.want {
				t.Errorf("Accel = %+v, want %+v", got, tt.want)
			}
		})
	}
}
