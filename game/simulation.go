package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/systems"
	"github.com/pthm-cable/noc/telemetry"
)

// simulationStep runs one tick: scenario forces, integration, boundary,
// collision, draw requests, drop and regeneration, in that order.
func (g *Game) simulationStep() {
	w := g.world
	pc := g.perfCollector

	if g.walker != nil {
		pc.StartPhase(telemetry.PhaseWalker)
		g.walker.Update(w)
	}
	if g.genetic != nil {
		pc.StartPhase(telemetry.PhaseGenetic)
		g.genetic.Update(w)
	}
	if g.opts.Scenario == ScenarioBouncy {
		g.applyGravity()
	}

	pc.StartPhase(telemetry.PhaseIntegration)
	g.integration.Update(w, g.field)

	pc.StartPhase(telemetry.PhaseBoundary)
	g.boundary.Update(w, g.field)

	if g.collision != nil {
		pc.StartPhase(telemetry.PhaseCollision)
		pairs := g.collision.Update(w)
		g.collector.RecordCollisions(len(pairs))
	}

	pc.StartPhase(telemetry.PhaseRender)
	g.draws = systems.DrawRequests(g.draws, w, g.field)

	if g.drop != nil {
		pc.StartPhase(telemetry.PhaseDrop)
		dropped := g.drop.Update(w, g.field)
		g.collector.RecordDrops(len(dropped))
		if g.opts.Scenario == ScenarioBouncy {
			g.replenish()
		}
	}

	if g.genetic != nil {
		pc.StartPhase(telemetry.PhaseRegenerate)
		g.regenerate()
	}
}

// applyGravity adds the configured vertical acceleration to every body.
func (g *Game) applyGravity() {
	gravity := float32(g.cfg.Physics.Gravity)
	g.world.Acc.ForEachMut(func(_ ecs.Entity, a *components.Acceleration) {
		a.Y += gravity
	})
}
