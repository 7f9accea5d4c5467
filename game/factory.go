package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/genetics"
)

var (
	// ErrInvalidMass is returned when creating a body with a non-positive mass.
	ErrInvalidMass = errors.New("mass must be positive")
	// ErrInvalidRadius is returned when creating a body with a non-positive radius.
	ErrInvalidRadius = errors.New("radius must be positive")
)

// BodySpec describes a body to create.
type BodySpec struct {
	Pos    components.Position
	Vel    components.Velocity
	Radius float32
	Mass   float32
	Color  color.RGBA

	Damped bool               // adds a Mass component so velocity is divided by mass each tick
	DNA    *components.DNA    // optional genome
	Walker *components.Walker // optional random walk
}

func validBody(spec BodySpec) error {
	if !(spec.Mass > 0) || math.IsInf(float64(spec.Mass), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, spec.Mass)
	}
	if !(spec.Radius > 0) || math.IsInf(float64(spec.Radius), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, spec.Radius)
	}
	return nil
}

// CreateBody validates spec and adds the entity to the world and region grid.
// Nothing is created when validation fails.
func (g *Game) CreateBody(spec BodySpec) (ecs.Entity, error) {
	if err := validBody(spec); err != nil {
		return ecs.Entity{}, err
	}

	w := g.world
	e := w.Registry.Next()
	attr := components.Attributes{Mass: spec.Mass, Radius: spec.Radius, Color: spec.Color}
	w.Regions.Place(e, &attr, spec.Pos, g.field)

	errs := []error{
		w.Pos.Add(e, spec.Pos),
		w.Vel.Add(e, spec.Vel),
		w.Acc.Add(e, components.Acceleration{}),
		w.Attr.Add(e, attr),
	}
	if spec.Damped {
		errs = append(errs, w.Mass.Add(e, components.Mass{Value: spec.Mass}))
	}
	if spec.DNA != nil {
		errs = append(errs, w.DNA.Add(e, *spec.DNA))
	}
	if spec.Walker != nil {
		errs = append(errs, w.Walker.Add(e, *spec.Walker))
	}
	if err := errors.Join(errs...); err != nil {
		w.Regions.Remove(e, attr.Region)
		_ = w.Registry.Drop(e)
		return ecs.Entity{}, fmt.Errorf("creating body: %w", err)
	}

	g.collector.RecordSpawns(1)
	return e, nil
}

func (g *Game) randRange(lo, hi float64) float32 {
	return float32(lo + g.rng.Float64()*(hi-lo))
}

func (g *Game) randomColor() color.RGBA {
	channel := func() uint8 { return uint8(100 + g.rng.IntN(155)) }
	return color.RGBA{R: channel(), G: channel(), B: channel(), A: 255}
}

// spawnBall creates one bouncy ball in the band below the ceiling, launched downwards.
func (g *Game) spawnBall() (ecs.Entity, error) {
	cfg := g.cfg.Bouncy
	f := g.field
	band := min(float32(cfg.SpawnBand), f.Height)
	theta := math.Pi + g.rng.Float64()*math.Pi

	return g.CreateBody(BodySpec{
		Pos: components.Position{
			X: g.randRange(0, float64(f.Width)),
			Y: g.randRange(float64(f.Height-band), float64(f.Height)),
		},
		Vel:    components.FromAngle(float32(theta), float32(cfg.LaunchSpeed)),
		Radius: g.randRange(cfg.RadiusMin, cfg.RadiusMax),
		Mass:   g.randRange(cfg.MassMin, cfg.MassMax),
		Color:  g.randomColor(),
		Damped: true,
	})
}

func (g *Game) spawnWalkers() error {
	cfg := g.cfg.Walker
	for i := 0; i < cfg.Population; i++ {
		_, err := g.CreateBody(BodySpec{
			Pos:    components.Position{X: g.field.Width / 2, Y: g.field.Height / 2},
			Radius: float32(cfg.Radius),
			Mass:   1,
			Color:  color.RGBA{R: 230, G: 230, B: 230, A: 255},
			Damped: true,
			Walker: &components.Walker{Step: float32(cfg.Step)},
		})
		if err != nil {
			return fmt.Errorf("spawning walker %d: %w", i, err)
		}
	}
	return nil
}

func (g *Game) spawnRockets() error {
	cfg := g.cfg.Rockets
	start := g.rocketStart()
	for i := 0; i < cfg.Population; i++ {
		dna := genetics.RandomDNA(g.rng)
		_, err := g.CreateBody(BodySpec{
			Pos:    start,
			Radius: float32(cfg.Radius),
			Mass:   1,
			Color:  g.randomColor(),
			DNA:    &dna,
		})
		if err != nil {
			return fmt.Errorf("spawning rocket %d: %w", i, err)
		}
	}
	return nil
}

func (g *Game) rocketStart() components.Position {
	return components.Position{X: g.field.Width / 2, Y: 0}
}

func (g *Game) rocketTarget() components.Position {
	cfg := g.cfg.Rockets
	return components.Position{
		X: float32(cfg.TargetX) * g.field.Width,
		Y: float32(cfg.TargetY) * g.field.Height,
	}
}
