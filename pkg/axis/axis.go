// Package axis computes tick placement and labels for the day and hour axes
// of a calendar heatmap. Text measurement is injected so the same rules
// serve any renderer.
package axis

import (
	"math"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
)

// MeasureFunc returns the rendered width of text in pixels.
type MeasureFunc func(text string) float64

const (
	// DayLabelLayout formats day ticks as month/day.
	DayLabelLayout = "01/02"
	// HourLabelLayout formats hour ticks as hours:minutes.
	HourLabelLayout = "15:04"

	// ReferenceLabel is a representative day label used to size day ticks.
	ReferenceLabel = "01/01"

	// tickPadding widens the measured label to leave room between ticks.
	tickPadding = 1.1
	// preferredTickHeight is the vertical room an hour label wants.
	preferredTickHeight = 20.0
	// glyphAspect is the average glyph width relative to the font size.
	glyphAspect = 0.6

	hoursPerDay    = 24
	minutesPerHour = 60
)

// Tick is one labeled axis position. Position is a day index on the day
// axis and minutes since midnight on the hour axis.
type Tick struct {
	Position float64
	Label    string
}

// ApproxMeasure estimates text width from the font size and the terminal
// cell width of each rune, so wide glyphs count double.
func ApproxMeasure(fontSize float64) MeasureFunc {
	return func(text string) float64 {
		return float64(runewidth.StringWidth(text)) * fontSize * glyphAspect
	}
}

// DayTickInterval returns how many days apart day labels must be so that
// labels as wide as reference fit across width pixels. It is at least 1.
func DayTickInterval(width float64, numDays int, reference string, measure MeasureFunc) int {
	if numDays < 1 {
		return 1
	}

	if width <= 0 || math.IsNaN(width) {
		return numDays
	}

	preferred := 0.0
	if measure != nil {
		preferred = measure(reference) * tickPadding
	}

	if preferred <= 0 {
		return 1
	}

	every := math.Ceil(float64(numDays) / (width / preferred))

	return max(int(every), 1)
}

// DayTicks labels the days whose day of month, counted from zero, is a
// multiple of every. Positions are indexes into days.
func DayTicks(days []time.Time, every int) []Tick {
	every = max(every, 1)

	ticks := make([]Tick, 0, len(days)/every+1)

	for i, d := range days {
		if (d.Day()-1)%every != 0 {
			continue
		}

		ticks = append(ticks, Tick{Position: float64(i), Label: d.Format(DayLabelLayout)})
	}

	return ticks
}

// HourTickStep returns the hour spacing of labels on an axis height pixels
// tall covering a full day. It is at least 1.
func HourTickStep(height float64) int {
	if height <= 0 || math.IsNaN(height) {
		return hoursPerDay
	}

	step := math.Round(preferredTickHeight / height * hoursPerDay)

	return max(int(step), 1)
}

// HourTicks labels every step hours across the whole hours of interval,
// starting at its first hour. The end of the day is labeled 00:00.
func HourTicks(interval bucket.DailyInterval, step int) []Tick {
	step = max(step, 1)

	first := int(math.Ceil(interval.StartMinute / minutesPerHour))
	last := int(math.Floor(interval.EndMinute / minutesPerHour))

	var ticks []Tick

	for h := first; h <= last; h += step {
		ticks = append(ticks, Tick{
			Position: float64(h * minutesPerHour),
			Label:    hourLabel(h),
		})
	}

	return ticks
}

func hourLabel(h int) string {
	return time.Date(0, time.January, 1, h%hoursPerDay, 0, 0, 0, time.UTC).Format(HourLabelLayout)
}
