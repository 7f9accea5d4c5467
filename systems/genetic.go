package systems

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/genetics"
)

// Phase is the state of the genetic system.
type Phase uint8

const (
	// PhaseRunning means agents are executing the current generation's moves.
	PhaseRunning Phase = iota
	// PhaseRegenerating means every move is spent and a new generation is due.
	PhaseRegenerating
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseRegenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}

// GeneticParams configures the genetic system.
type GeneticParams struct {
	Target           components.Position
	Start            components.Position
	StartVelocity    components.Velocity
	TicksPerMove     int
	Thrust           float32
	MutationChance   float64
	MaxWeight        float64
	SelectionRetries int
}

// GenerationStats summarises a finished generation.
type GenerationStats struct {
	Generation   int
	Agents       int
	BestDistance float64
	MeanDistance float64
	MeanWeight   float64
	ParentA      ecs.Entity
	ParentB      ecs.Entity
	Fallback     error // non-nil when uniform selection replaced weighted selection
}

// LogValue implements slog.LogValuer.
func (s GenerationStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("generation", s.Generation),
		slog.Int("agents", s.Agents),
		slog.Float64("best_distance", s.BestDistance),
		slog.Float64("mean_distance", s.MeanDistance),
		slog.Float64("mean_weight", s.MeanWeight),
	}
	if s.Fallback != nil {
		attrs = append(attrs, slog.String("fallback", s.Fallback.Error()))
	}
	return slog.GroupValue(attrs...)
}

// GeneticSystem drives agents with their DNA and breeds a new generation once
// every move has been played.
type GeneticSystem struct {
	params     GeneticParams
	rng        *rand.Rand
	phase      Phase
	generation int
	tick       int

	// Scratch buffers reused across generations
	agents    []ecs.Entity
	distances []float64
	weights   []float64
}

// NewGeneticSystem creates a genetic system in the running phase.
func NewGeneticSystem(params GeneticParams, rng *rand.Rand) *GeneticSystem {
	if params.TicksPerMove < 1 {
		params.TicksPerMove = 1
	}
	return &GeneticSystem{
		params: params,
		rng:    rng,
		phase:  PhaseRunning,
	}
}

// Phase returns the current phase.
func (s *GeneticSystem) Phase() Phase { return s.phase }

// Done reports whether the current generation has played all of its moves.
func (s *GeneticSystem) Done() bool { return s.phase == PhaseRegenerating }

// Generation returns the number of completed regenerations.
func (s *GeneticSystem) Generation() int { return s.generation }

// MoveIndex returns the gene currently being played.
func (s *GeneticSystem) MoveIndex() int { return s.tick / s.params.TicksPerMove }

// Params returns the current parameters.
func (s *GeneticSystem) Params() GeneticParams { return s.params }

// SetMutationChance changes the mutation probability for future generations.
func (s *GeneticSystem) SetMutationChance(chance float64) {
	s.params.MutationChance = min(max(chance, 0), 1)
}

// SetTarget moves the target agents are scored against.
func (s *GeneticSystem) SetTarget(p components.Position) { s.params.Target = p }

// SetStart moves the position agents are reset to.
func (s *GeneticSystem) SetStart(p components.Position) { s.params.Start = p }

// Update applies the current move of every agent's DNA. Once the last move's
// slot ends the phase flips to PhaseRegenerating and Update does nothing
// until Regenerate runs.
func (s *GeneticSystem) Update(w *World) {
	if s.phase != PhaseRunning {
		return
	}
	move := s.MoveIndex()
	if move >= components.GenomeLength {
		s.phase = PhaseRegenerating
		return
	}

	w.DNA.ForEach(func(e ecs.Entity, dna components.DNA) {
		acc := w.Acc.GetMut(e)
		vel, ok := w.Vel.Get(e)
		if acc == nil || !ok {
			return
		}
		a := genetics.Move(dna[move]).Accel(vel, s.params.Thrust)
		acc.X += a.X
		acc.Y += a.Y
	})
	s.tick++
}

// Regenerate scores every agent against the target, selects two parents and
// gives each agent its own offspring of them. Agents are reset to the start
// position and the system returns to PhaseRunning. It may be called in
// either phase. An error is returned only when fewer than two agents exist;
// the agents are still reset in that case.
func (s *GeneticSystem) Regenerate(w *World, f Field) (GenerationStats, error) {
	s.agents = s.agents[:0]
	s.distances = s.distances[:0]
	w.DNA.ForEach(func(e ecs.Entity, _ components.DNA) {
		pos, ok := w.Pos.Get(e)
		if !ok {
			return
		}
		s.agents = append(s.agents, e)
		s.distances = append(s.distances, genetics.Distance(pos, s.params.Target))
	})

	stats := GenerationStats{Generation: s.generation, Agents: len(s.agents)}
	var err error

	if len(s.agents) > 0 {
		s.weights = genetics.Weights(s.weights, s.distances, float64(f.Diagonal()), s.params.MaxWeight)
		stats.BestDistance = floats.Min(s.distances)
		stats.MeanDistance = floats.Sum(s.distances) / float64(len(s.distances))
		stats.MeanWeight = floats.Sum(s.weights) / float64(len(s.weights))
	}

	sel, selErr := genetics.SelectParents(s.weights[:len(s.agents)], s.rng, s.params.SelectionRetries)
	if selErr != nil {
		err = fmt.Errorf("generation %d: %w", s.generation, selErr)
	} else {
		if sel.Fallback != nil {
			slog.Warn("parent selection fell back to uniform",
				"generation", s.generation,
				"reason", sel.Fallback,
			)
		}
		stats.ParentA = s.agents[sel.A]
		stats.ParentB = s.agents[sel.B]
		stats.Fallback = sel.Fallback
		s.breed(w, sel)
	}

	s.reset(w, f)
	s.generation++
	s.tick = 0
	s.phase = PhaseRunning
	return stats, err
}

func (s *GeneticSystem) breed(w *World, sel genetics.Selection) {
	// Copy parents before any agent's DNA is overwritten.
	a, _ := w.DNA.Get(s.agents[sel.A])
	b, _ := w.DNA.Get(s.agents[sel.B])
	for _, e := range s.agents {
		if dna := w.DNA.GetMut(e); dna != nil {
			*dna = genetics.Offspring(a, b, s.params.MutationChance, s.rng)
		}
	}
}

func (s *GeneticSystem) reset(w *World, f Field) {
	for _, e := range s.agents {
		pos := w.Pos.GetMut(e)
		if pos == nil {
			continue
		}
		*pos = s.params.Start
		if vel := w.Vel.GetMut(e); vel != nil {
			*vel = s.params.StartVelocity
		}
		if acc := w.Acc.GetMut(e); acc != nil {
			*acc = components.Acceleration{}
		}
		if attr := w.Attr.GetMut(e); attr != nil {
			w.Regions.Place(e, attr, *pos, f)
		}
	}
}
