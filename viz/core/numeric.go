package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to [0, 1].
func Clamp01(value float64) float64 {
	return Clamp(value, 0, 1)
}

// Lerp linearly interpolates between a and b by t in [0, 1].
// t outside [0, 1] extrapolates.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Wrap maps value into [0, period) by modulo, handling negative inputs.
func Wrap(value, period float64) float64 {
	if period <= 0 {
		return 0
	}

	m := math.Mod(value, period)
	if m < 0 {
		m += period
	}

	return m
}
