// Package bucket assigns time series samples to calendar cells: one column
// per local day, one row per fixed sub-interval of a daily time window.
// All arithmetic is done on wall-clock time in the configured location, so
// DST transitions shorten or lengthen a day without shifting its buckets.
package bucket

import (
	"math"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/aggregate"
	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// MinutesPerDay is the length of a nominal day in wall-clock minutes.
const MinutesPerDay = 24 * 60

// hoursPerDay is the upper bound of an hour-based daily interval.
const hoursPerDay = 24

// DailyInterval is a window of the local day in minutes since midnight.
type DailyInterval struct {
	StartMinute float64
	EndMinute   float64
}

// FullDay covers the whole local day.
var FullDay = DailyInterval{StartMinute: 0, EndMinute: MinutesPerDay}

// HoursInterval builds a window from whole hours. A to hour of 0 means the
// end of the day, and a from hour after the to hour is swapped.
func HoursInterval(fromHour, toHour int) DailyInterval {
	fromHour = stats.Clamp(fromHour, 0, hoursPerDay)
	toHour = stats.Clamp(toHour, 0, hoursPerDay)

	if toHour == 0 {
		toHour = hoursPerDay
	}

	if fromHour > toHour {
		fromHour, toHour = toHour, fromHour
	}

	return DailyInterval{
		StartMinute: float64(fromHour * 60),
		EndMinute:   float64(toHour * 60),
	}
}

// Width returns the window length in minutes.
func (d DailyInterval) Width() float64 {
	return d.EndMinute - d.StartMinute
}

// Contains reports whether minute m lies in the closed window.
func (d DailyInterval) Contains(m float64) bool {
	return m >= d.StartMinute && m <= d.EndMinute
}

func (d DailyInterval) normalize() DailyInterval {
	start, end := d.StartMinute, d.EndMinute

	if math.IsNaN(start) {
		start = 0
	}

	if math.IsNaN(end) {
		end = MinutesPerDay
	}

	start = stats.Clamp(start, 0, MinutesPerDay)
	end = stats.Clamp(end, 0, MinutesPerDay)

	if start > end {
		start, end = end, start
	}

	return DailyInterval{StartMinute: start, EndMinute: end}
}

// Config controls a bucketization run.
type Config struct {
	// Location is the time zone that defines days and wall-clock minutes.
	Location *time.Location

	// Interval is the part of each day that is split into buckets.
	Interval DailyInterval

	// BucketCount is the number of equal sub-intervals of Interval.
	BucketCount int

	// Aggregation reduces the samples of one cell.
	Aggregation aggregate.Kind

	// From and To bound the display range. Samples outside it are dropped.
	// When both are zero the range is the span of the input samples.
	From time.Time
	To   time.Time
}

// DefaultConfig returns a full-day, hourly, mean-aggregated UTC configuration.
func DefaultConfig() Config {
	return Config{
		Location:    time.UTC,
		Interval:    FullDay,
		BucketCount: hoursPerDay,
		Aggregation: aggregate.DefaultKind,
	}
}

// Normalize returns a copy with every invalid field replaced by a safe
// value: a nil location becomes UTC, a bucket count below one becomes one,
// the interval is clamped to the day and ordered, an unknown aggregation
// becomes the mean and a reversed range is swapped.
func (c Config) Normalize() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}

	if c.BucketCount < 1 {
		c.BucketCount = 1
	}

	c.Interval = c.Interval.normalize()
	c.Aggregation, _ = aggregate.ParseKind(string(c.Aggregation))

	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		c.From, c.To = c.To, c.From
	}

	return c
}

// BucketWidth returns the width of one bucket in minutes. It is never rounded.
func (c Config) BucketWidth() float64 {
	n := max(c.BucketCount, 1)

	return c.Interval.Width() / float64(n)
}

// BucketIndex maps a wall-clock minute to its bucket. ok is false when the
// minute lies outside the daily interval. The last bucket is closed at the
// end of the interval and a zero-width interval has a single bucket.
func (c Config) BucketIndex(minute float64) (index int, ok bool) {
	if !c.Interval.Contains(minute) {
		return 0, false
	}

	width := c.BucketWidth()
	if width <= 0 {
		return 0, true
	}

	index = int(math.Floor((minute - c.Interval.StartMinute) / width))

	return stats.Clamp(index, 0, max(c.BucketCount, 1)-1), true
}

// Time zone names with special meaning in ResolveLocation.
const (
	zoneUTC     = "utc"
	zoneLocal   = "local"
	zoneBrowser = "browser"
)

// ResolveLocation maps a zone name to a location. The empty name, "local"
// and "browser" select the process local zone. ok is false when the name is
// not a known IANA zone; UTC is returned in that case.
func ResolveLocation(name string) (*time.Location, bool) {
	trimmed := strings.TrimSpace(name)

	switch strings.ToLower(trimmed) {
	case "", zoneLocal, zoneBrowser:
		return time.Local, true
	case zoneUTC:
		return time.UTC, true
	}

	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return time.UTC, false
	}

	return loc, true
}
