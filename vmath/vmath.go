// Package vmath holds the scalar helpers shared by the track builder, the simulation and the
// render pipeline: interpolation, clamping, wraparound arithmetic, easing and fog falloff
package vmath

import (
	"math"
	"math/rand/v2"
)

// --- Interpolation ---

// Interpolate returns a + (b-a)*percent
func Interpolate(a, b, percent float64) float64 {
	return a + (b-a)*percent
}

// EaseIn is a quadratic ease-in from a to b
func EaseIn(a, b, percent float64) float64 {
	return a + (b-a)*percent*percent
}

// EaseOut is a quadratic ease-out from a to b
func EaseOut(a, b, percent float64) float64 {
	inv := 1 - percent
	return a + (b-a)*(1-inv*inv)
}

// EaseInOut is a cosine ease-in-out from a to b
func EaseInOut(a, b, percent float64) float64 {
	return a + (b-a)*(-math.Cos(percent*math.Pi)/2+0.5)
}

// --- Ranges ---

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Increase adds inc to start and wraps the result into [0, limit)
// Negative increments wrap backwards; non-finite or non-positive limits return start+inc unchanged
func Increase(start, inc, limit float64) float64 {
	result := start + inc
	if !(limit > 0) || math.IsInf(limit, 0) {
		return result
	}
	result = math.Mod(result, limit)
	if result < 0 {
		result += limit
	}
	// Mod of a tiny negative can round up to limit
	if result >= limit {
		result = 0
	}
	return result
}

// FloorMod is integer modulo with the sign of the divisor, n must be positive
func FloorMod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// PercentRemaining is the fractional position of n inside its current block of size total
func PercentRemaining(n, total float64) float64 {
	p := math.Mod(n, total) / total
	if p < 0 {
		p += 1
	}
	return p
}

// Accelerate applies a constant acceleration over dt
func Accelerate(v, accel, dt float64) float64 {
	return v + accel*dt
}

// ExponentialFog returns the visibility factor for a normalized distance, 1 = clear, 0 = fully fogged
func ExponentialFog(distance, density float64) float64 {
	return 1 / math.Pow(math.E, distance*distance*density)
}

// --- Randomness ---

// RandomInt returns a rounded uniform value in [lo, hi]
func RandomInt(rng *rand.Rand, lo, hi int) int {
	return int(math.Round(Interpolate(float64(lo), float64(hi), rng.Float64())))
}

// RandomChoice picks one element of options
func RandomChoice[T any](rng *rand.Rand, options []T) T {
	return options[RandomInt(rng, 0, len(options)-1)]
}

// RandomSign returns -1 or 1
func RandomSign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
