package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase identifies one timed section of a simulation tick.
type Phase uint8

// Phases in tick order.
const (
	PhaseWalker Phase = iota
	PhaseGenetic
	PhaseIntegration
	PhaseBoundary
	PhaseCollision
	PhaseRender
	PhaseDrop
	PhaseRegenerate
	PhaseTelemetry
	NumPhases

	noPhase Phase = NumPhases
)

var phaseNames = [NumPhases]string{
	"walker", "genetic", "integration", "boundary", "collision",
	"render", "drop", "regenerate", "telemetry",
}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "none"
}

// tickSample is the timing of a single tick.
type tickSample struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector keeps per-phase tick timings over a ring of recent ticks.
// It does not allocate once constructed.
type PerfCollector struct {
	samples []tickSample
	next    int
	filled  int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame     time.Time
	frameDuration time.Duration

	scratch []float64
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// Values below 1 fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]tickSample, windowSize),
		phase:   noPhase,
		scratch: make([]float64, 0, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickSample{}
	p.phase = noPhase
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndTick closes the running phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < NumPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = noPhase
}

// RecordFrame marks a rendered frame in windowed mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats is the aggregate over the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	StdTickDuration time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of average tick time, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	ticks := p.scratch[:0]
	var phaseSum [NumPhases]time.Duration
	for _, sample := range p.samples[:p.filled] {
		ticks = append(ticks, float64(sample.total))
		for i, d := range sample.phases {
			phaseSum[i] += d
		}
	}
	p.scratch = ticks

	mean, std := stat.MeanStdDev(ticks, nil)
	if len(ticks) < 2 {
		std = 0
	}
	s.AvgTickDuration = time.Duration(mean)
	s.StdTickDuration = time.Duration(std)
	s.MinTickDuration = time.Duration(floats.Min(ticks))
	s.MaxTickDuration = time.Duration(floats.Max(ticks))

	n := time.Duration(p.filled)
	for i, sum := range phaseSum {
		s.PhaseAvg[i] = sum / n
		if mean > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / mean * 100
		}
	}
	if mean > 0 {
		s.TicksPerSecond = float64(time.Second) / mean
	}
	return s
}

// LogStats logs the aggregate, omitting phases under 0.1% of the tick.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("std_tick_us", s.StdTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	StdTickUS      int64   `csv:"std_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	WalkerPct      float64 `csv:"walker_pct"`
	GeneticPct     float64 `csv:"genetic_pct"`
	IntegrationPct float64 `csv:"integration_pct"`
	BoundaryPct    float64 `csv:"boundary_pct"`
	CollisionPct   float64 `csv:"collision_pct"`
	RenderPct      float64 `csv:"render_pct"`
	DropPct        float64 `csv:"drop_pct"`
	RegeneratePct  float64 `csv:"regenerate_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		StdTickUS:      s.StdTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		WalkerPct:      s.PhasePct[PhaseWalker],
		GeneticPct:     s.PhasePct[PhaseGenetic],
		IntegrationPct: s.PhasePct[PhaseIntegration],
		BoundaryPct:    s.PhasePct[PhaseBoundary],
		CollisionPct:   s.PhasePct[PhaseCollision],
		RenderPct:      s.PhasePct[PhaseRender],
		DropPct:        s.PhasePct[PhaseDrop],
		RegeneratePct:  s.PhasePct[PhaseRegenerate],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
