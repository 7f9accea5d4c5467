package systems

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampInt clamps an int value between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// absFloat returns the absolute value of a float32.
func absFloat(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// rebound returns the factor applied to a velocity component on wall contact.
// Non-positive masses are rejected at creation; treat them as unit mass here.
func rebound(mass float32) float32 {
	if mass <= 0 {
		return -1
	}
	return -1 / mass
}
