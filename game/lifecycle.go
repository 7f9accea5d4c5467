package game

import "log/slog"

// replenish tops the bouncy population back up after drops.
func (g *Game) replenish() {
	want := g.cfg.Bouncy.Population
	for n := g.world.Registry.Len(); n < want; n++ {
		if _, err := g.spawnBall(); err != nil {
			slog.Error("failed to spawn ball", "error", err)
			return
		}
	}
}

// regenerate breeds the next rocket generation once every move has played.
func (g *Game) regenerate() {
	if g.genetic == nil || !g.genetic.Done() {
		return
	}

	stats, err := g.genetic.Regenerate(g.world, g.field)
	if err != nil {
		slog.Warn("regeneration without breeding", "error", err)
	}
	g.lastGeneration = stats
	g.recordGeneration(stats)
}
