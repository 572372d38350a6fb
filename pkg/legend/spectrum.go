// Package legend lays out the color spectrum and tick values of a heatmap
// legend independently of any drawing surface.
package legend

import (
	"math"
	"strings"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

// Quality controls how finely the spectrum gradient is subdivided.
type Quality string

const (
	// High places a gradient stop at every pixel.
	High Quality = "high"
	// Medium places roughly 40 stops across the spectrum.
	Medium Quality = "medium"
	// Low places roughly 20 stops across the spectrum.
	Low Quality = "low"
)

// DefaultQuality is used for empty or unknown quality names.
const DefaultQuality = High

const (
	mediumDivisions = 40
	lowDivisions    = 20
)

// ParseQuality resolves a case-insensitive quality name. ok is false for
// unknown names; DefaultQuality is returned in that case.
func ParseQuality(name string) (Quality, bool) {
	q := Quality(strings.ToLower(strings.TrimSpace(name)))

	switch q {
	case High, Medium, Low:
		return q, true
	default:
		return DefaultQuality, false
	}
}

// StepSize is the pixel distance between gradient stops for a spectrum of
// the given width.
func (q Quality) StepSize(width float64) float64 {
	switch q {
	case High:
		return 1
	case Low:
		return math.Max(math.Ceil(width/lowDivisions), 1)
	case Medium:
		return math.Max(math.Ceil(width/mediumDivisions), 1)
	default:
		return math.Max(math.Ceil(width/mediumDivisions), 1)
	}
}

// Stop is one gradient stop of the spectrum.
type Stop struct {
	// Offset is the stop position in [0, 1) along the spectrum.
	Offset float64
	// Value is the data value the stop represents.
	Value float64
	Color string
}

// Spectrum samples fn across [lo, hi] for a spectrum width pixels wide.
// Stops start at pixel 0 and advance by the quality's step size; the last
// stop lies before the right edge. A non-positive or non-finite width yields
// no stops.
func Spectrum(fn colorscale.Func, lo, hi, width float64, q Quality) []Stop {
	if fn == nil || !stats.IsFinite(width) || width <= 0 {
		return nil
	}

	step := q.StepSize(width)
	stops := make([]Stop, 0, int(math.Ceil(width/step)))

	for pos := 0.0; pos < width; pos += step {
		offset := pos / width
		value := stats.Lerp(lo, hi, offset)

		stops = append(stops, Stop{Offset: offset, Value: value, Color: fn(value)})
	}

	return stops
}

// IndicatorOffset is the pixel position of value on a spectrum spanning
// [lo, hi] over width pixels. ok is false when the position is undefined.
// Values outside the domain are extrapolated, not clamped.
func IndicatorOffset(value, lo, hi, width float64) (float64, bool) {
	t, ok := stats.Normalize(value, lo, hi)
	if !ok || !stats.IsFinite(width) {
		return 0, false
	}

	return t * width, true
}
