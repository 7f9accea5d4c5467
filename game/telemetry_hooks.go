package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/systems"
	"github.com/pthm-cable/noc/telemetry"
)

// flushTelemetry emits window stats once the collector's window has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.world.Registry.Len(), g.occupiedRegions(), g.sampleSpeeds())
	perfStats := g.perfCollector.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// recordGeneration reports a finished generation to every telemetry sink.
func (g *Game) recordGeneration(stats systems.GenerationStats) {
	g.collector.RecordGeneration(stats.Fallback != nil)

	if g.opts.GenerationCallback != nil {
		g.opts.GenerationCallback(stats)
	}
	if g.opts.LogStats {
		slog.Info("generation", "stats", stats)
	}
	if err := g.outputManager.WriteGeneration(telemetry.NewGenerationRecord(g.tick, stats)); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
}

// sampleSpeeds collects the speed of every moving entity.
func (g *Game) sampleSpeeds() []float64 {
	g.speeds = g.speeds[:0]
	g.world.Vel.ForEach(func(_ ecs.Entity, v components.Velocity) {
		g.speeds = append(g.speeds, float64(v.Magnitude()))
	})
	return g.speeds
}

func (g *Game) occupiedRegions() int {
	n := 0
	for i := 0; i < g.world.Regions.Len(); i++ {
		if len(g.world.Regions.Bucket(i)) > 0 {
			n++
		}
	}
	return n
}
