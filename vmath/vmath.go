package vmath

import (
	"math"
)

// SpeedTolerance is the accepted drift between a normalized speed and its target
const SpeedTolerance = 1e-9

// --- Scalars ---

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp blends a toward b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns -1, 0, or 1
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// ApproxEqual compares with relative tolerance scaled by magnitude
func ApproxEqual(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// --- Angles (degrees) ---

// WrapDeg maps an angle into [0, 360)
func WrapDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ShortestArcDeg returns the signed difference to - from in (-180, 180]
func ShortestArcDeg(from, to float64) float64 {
	diff := math.Mod(to-from, 360)
	if diff > 180 {
		diff -= 360
	} else if diff <= -180 {
		diff += 360
	}
	return diff
}
