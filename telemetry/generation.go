package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/noc/systems"
)

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	Tick         int32   `csv:"tick"`
	Generation   int     `csv:"generation"`
	Agents       int     `csv:"agents"`
	BestDistance float64 `csv:"best_distance"`
	MeanDistance float64 `csv:"mean_distance"`
	MeanWeight   float64 `csv:"mean_weight"`
	ParentA      uint32  `csv:"parent_a"`
	ParentB      uint32  `csv:"parent_b"`
	Fallback     string  `csv:"fallback"`
}

// NewGenerationRecord flattens generation stats for CSV output.
func NewGenerationRecord(tick int32, s systems.GenerationStats) GenerationRecord {
	r := GenerationRecord{
		Tick:         tick,
		Generation:   s.Generation,
		Agents:       s.Agents,
		BestDistance: s.BestDistance,
		MeanDistance: s.MeanDistance,
		MeanWeight:   s.MeanWeight,
	}
	if !s.ParentA.IsZero() {
		r.ParentA = s.ParentA.ID()
	}
	if !s.ParentB.IsZero() {
		r.ParentB = s.ParentB.ID()
	}
	if s.Fallback != nil {
		r.Fallback = s.Fallback.Error()
	}
	return r
}

// LogValue implements slog.LogValuer.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(r.Tick)),
		slog.Int("generation", r.Generation),
		slog.Int("agents", r.Agents),
		slog.Float64("best_distance", r.BestDistance),
		slog.Float64("mean_distance", r.MeanDistance),
		slog.Float64("mean_weight", r.MeanWeight),
		slog.String("fallback", r.Fallback),
	)
}
