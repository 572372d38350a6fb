package legend

import (
	"math"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// DefaultTickCount is the approximate number of ticks on a legend axis.
const DefaultTickCount = 10

const (
	maxExactInt = 1 << 53
	maxTicks    = 1 << 12
)

// Thresholds between the 1, 2, 5 and 10 tick multipliers.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns about count round values spanning [lo, hi], multiples of 1,
// 2 or 5 times a power of ten. The ticks follow the direction of the domain.
// A degenerate domain yields the single value lo.
func Ticks(lo, hi float64, count int) []float64 {
	if count <= 0 || !stats.IsFinite(lo) || !stats.IsFinite(hi) {
		return nil
	}

	if lo == hi {
		return []float64{lo}
	}

	reverse := hi < lo
	if reverse {
		lo, hi = hi, lo
	}

	inc := tickIncrement(lo, hi, count)
	if inc == 0 || !stats.IsFinite(inc) {
		return nil
	}

	// A negative increment is the reciprocal of a fractional step, which
	// keeps ticks like 0.1 and 0.3 exact.
	var start, stop float64
	if inc > 0 {
		start, stop = math.Ceil(lo/inc), math.Floor(hi/inc)
	} else {
		start, stop = math.Ceil(lo*-inc), math.Floor(hi*-inc)
	}

	// Past 2^53 consecutive multiples are no longer distinct floats.
	if math.Abs(start) > maxExactInt || math.Abs(stop) > maxExactInt {
		return nil
	}

	n := int(stop-start) + 1
	if n <= 0 || n > maxTicks {
		return nil
	}

	ticks := make([]float64, n)
	for i := range n {
		if inc > 0 {
			ticks[i] = (start + float64(i)) * inc
		} else {
			ticks[i] = (start + float64(i)) / -inc
		}
	}

	if reverse {
		slices.Reverse(ticks)
	}

	return ticks
}

func tickIncrement(lo, hi float64, count int) float64 {
	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0

	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}

	return -math.Pow(10, -power) / factor
}

// FormatValue renders a data value for labels and tooltips. A negative
// decimals trims trailing zeros at full precision.
func FormatValue(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case decimals < 0:
		return humanize.Ftoa(v)
	default:
		return humanize.FtoaWithDigits(v, decimals)
	}
}
