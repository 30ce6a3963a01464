// Package utils contains small numeric helpers shared by the planner packages.
package utils

import "math"

// DefaultEpsilon is the tolerance used when comparing computed distances.
const DefaultEpsilon = 1e-9

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Lerp linearly interpolates between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// maxCeilDiv bounds CeilDiv so the result always fits an int on 32-bit platforms too.
const maxCeilDiv = math.MaxInt32

// CeilDiv returns ceil(a/b) as an int for positive a and b, saturating at math.MaxInt32.
func CeilDiv(a, b float64) int {
	q := math.Ceil(a/b - DefaultEpsilon)
	if !(q < maxCeilDiv) {
		return maxCeilDiv
	}
	return int(q)
}
