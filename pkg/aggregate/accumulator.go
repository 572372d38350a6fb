package aggregate

import (
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// observation is a value tagged with its ordering key.
// seq breaks timestamp ties by input position.
type observation struct {
	at    time.Time
	seq   int
	value float64
}

func (o observation) before(other observation) bool {
	if o.at.Equal(other.at) {
		return o.seq < other.seq
	}

	return o.at.Before(other.at)
}

// Accumulator folds values into running totals so that every Kind can be
// answered in O(1) without retaining the values. The zero value is empty
// and ready to use.
type Accumulator struct {
	count int
	sum   float64
	min   float64
	max   float64
	first observation
	last  observation
}

// Add folds one value observed at ts. seq is the value's position in the
// input and decides first/last between equal timestamps.
// Non-finite values are ignored.
func (a *Accumulator) Add(ts time.Time, seq int, v float64) {
	if !stats.IsFinite(v) {
		return
	}

	obs := observation{at: ts, seq: seq, value: v}

	if a.count == 0 {
		a.count = 1
		a.sum = v
		a.min = v
		a.max = v
		a.first = obs
		a.last = obs

		return
	}

	a.count++
	a.sum += v
	a.min = min(a.min, v)
	a.max = max(a.max, v)

	if obs.before(a.first) {
		a.first = obs
	}

	if !obs.before(a.last) {
		a.last = obs
	}
}

// Merge folds another accumulator into a. The result is identical to adding
// both inputs to a single accumulator, provided sequence numbers are global.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil || other.count == 0 {
		return
	}

	if a.count == 0 {
		*a = *other

		return
	}

	a.count += other.count
	a.sum += other.sum
	a.min = min(a.min, other.min)
	a.max = max(a.max, other.max)

	if other.first.before(a.first) {
		a.first = other.first
	}

	if a.last.before(other.last) {
		a.last = other.last
	}
}

// Len returns the number of contributing values.
func (a *Accumulator) Len() int {
	return a.count
}

// Result reduces the accumulated values under kind.
// ok is false when nothing was accumulated, for every kind including Count.
func (a *Accumulator) Result(kind Kind) (value float64, ok bool) {
	if a.count == 0 {
		return 0, false
	}

	switch kind {
	case Sum:
		return a.sum, true
	case Count:
		return float64(a.count), true
	case Min:
		return a.min, true
	case Max:
		return a.max, true
	case First:
		return a.first.value, true
	case Last:
		return a.last.value, true
	case Mean:
		return a.sum / float64(a.count), true
	default:
		return a.sum / float64(a.count), true
	}
}
