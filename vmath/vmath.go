package vmath

import (
	"math"
)

// Gravity is standard gravitational acceleration in m/s²
const Gravity = 9.81

// --- Scalar ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
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

// Lerp interpolates a→b by t without clamping t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep returns the cubic Hermite ramp of x over [edge0, edge1]
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// MoveToward steps current toward target by at most maxDelta
func MoveToward(current, target, maxDelta float64) float64 {
	d := target - current
	if math.Abs(d) <= maxDelta {
		return target
	}
	return current + Sign(d)*maxDelta
}

// WrapAngle normalizes an angle to [-π, π)
func WrapAngle(a float64) float64 {
	wrapped := math.Mod(a+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// SafeDiv returns a/b, or fallback when b is too small to divide by
func SafeDiv(a, b, fallback float64) float64 {
	if math.Abs(b) < 1e-9 {
		return fallback
	}
	return FiniteOr(a/b, fallback)
}

// --- Finite guards ---

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteOr returns v if finite, otherwise fallback
func FiniteOr(v, fallback float64) float64 {
	if IsFinite(v) {
		return v
	}
	return fallback
}

// Finite returns v if finite, otherwise 0
func Finite(v float64) float64 {
	return FiniteOr(v, 0)
}

// RadPerSecToRPM converts angular velocity to revolutions per minute
func RadPerSecToRPM(w float64) float64 {
	return w * 60 / (2 * math.Pi)
}

// RPMToRadPerSec converts revolutions per minute to angular velocity
func RPMToRadPerSec(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}
