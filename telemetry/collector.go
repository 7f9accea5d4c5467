package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns      int
	drops       int
	collisions  int
	generations int
	fallbacks   int
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// RecordSpawns records n newly created entities.
func (c *Collector) RecordSpawns(n int) { c.spawns += n }

// RecordDrops records n removed entities.
func (c *Collector) RecordDrops(n int) { c.drops += n }

// RecordCollisions records n colliding pairs.
func (c *Collector) RecordCollisions(n int) { c.collisions += n }

// RecordGeneration records a regeneration and whether selection fell back to uniform.
func (c *Collector) RecordGeneration(fallback bool) {
	c.generations++
	if fallback {
		c.fallbacks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds are the current entity speeds; occupied is the number of non-empty regions.
func (c *Collector) Flush(currentTick int32, population, occupied int, speeds []float64) WindowStats {
	sp := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Population:      population,
		OccupiedRegions: occupied,
		Spawns:          c.spawns,
		Drops:           c.drops,
		Collisions:      c.collisions,
		Generations:     c.generations,
		Fallbacks:       c.fallbacks,
		SpeedMean:       sp.Mean,
		SpeedStd:        sp.Std,
		SpeedP50:        sp.P50,
		SpeedP90:        sp.P90,
		SpeedMax:        sp.Max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.drops = 0
	c.collisions = 0
	c.generations = 0
	c.fallbacks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
