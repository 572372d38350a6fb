// Package stats provides the numeric helpers shared by the aggregation and
// color scale packages. NaN and infinities are treated as missing input.
package stats

import (
	"cmp"
	"math"
)

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns the finite elements of values in their original order.
// The input slice is not modified.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))

	for _, v := range values {
		if IsFinite(v) {
			out = append(out, v)
		}
	}

	return out
}

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return Sum(values) / float64(len(values))
}

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v < result {
			result = v
		}
	}

	return result
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	result := values[0]

	for _, v := range values[1:] {
		if v > result {
			result = v
		}
	}

	return result
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T cmp.Ordered](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// Range returns the smallest and largest finite values.
// ok is false when values holds no finite element.
func Range(values []float64) (lo, hi float64, ok bool) {
	finite := Finite(values)
	if len(finite) == 0 {
		return 0, 0, false
	}

	return Min(finite), Max(finite), true
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Normalize maps v from [lo, hi] onto [0, 1] without clamping.
// ok is false when the domain is empty or any operand is not finite.
// A reversed domain (lo > hi) is allowed and maps lo to 0.
func Normalize(v, lo, hi float64) (t float64, ok bool) {
	if !IsFinite(v) || !IsFinite(lo) || !IsFinite(hi) || lo == hi {
		return 0, false
	}

	return (v - lo) / (hi - lo), true
}
