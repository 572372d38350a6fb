package aggregate

import (
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// Reduce aggregates values that are already in timestamp order.
// Non-finite values are skipped. ok is false when no finite value remains.
func Reduce(kind Kind, values []float64) (value float64, ok bool) {
	finite := stats.Finite(values)
	if len(finite) == 0 {
		return 0, false
	}

	switch kind {
	case Sum:
		return stats.Sum(finite), true
	case Count:
		return float64(len(finite)), true
	case Min:
		return stats.Min(finite), true
	case Max:
		return stats.Max(finite), true
	case First:
		return finite[0], true
	case Last:
		return finite[len(finite)-1], true
	case Mean:
		return stats.Mean(finite), true
	default:
		return stats.Mean(finite), true
	}
}

// ReduceAt aggregates values with explicit timestamps in any order.
// Equal timestamps resolve first/last by slice position.
// len(times) must equal len(values); extra elements of either are ignored.
func ReduceAt(kind Kind, times []time.Time, values []float64) (value float64, ok bool) {
	var acc Accumulator

	for i := range min(len(times), len(values)) {
		acc.Add(times[i], i, values[i])
	}

	return acc.Result(kind)
}
