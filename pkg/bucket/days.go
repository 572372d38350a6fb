package bucket

import (
	"time"
)

// date is a calendar day independent of any zone.
type date struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) date {
	y, m, d := t.Date()

	return date{year: y, month: m, day: d}
}

// ordinal counts days since the Unix epoch. It is computed in UTC, where
// every day is exactly 24 hours long.
func (d date) ordinal() int64 {
	const secondsPerDay = 24 * 60 * 60

	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func (d date) addDays(n int) date {
	return dateOf(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC))
}

func (d date) compare(other date) int {
	a, b := d.ordinal(), other.ordinal()

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// midnight returns the first instant of the day in loc.
func (d date) midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// wallMinute returns fractional minutes since local midnight on the wall clock.
func wallMinute(t time.Time) float64 {
	h, m, s := t.Clock()

	return float64(h*60+m) + float64(s)/60 + float64(t.Nanosecond())/float64(time.Minute)
}

// Days enumerates the local days touched by the configured range, both
// boundary days included. An unset range yields no days.
func Days(cfg Config) []time.Time {
	cfg = cfg.Normalize()

	if cfg.From.IsZero() || cfg.To.IsZero() {
		return nil
	}

	return daysBetween(dateOf(cfg.From.In(cfg.Location)), dateOf(cfg.To.In(cfg.Location)), cfg.Location)
}

func daysBetween(first, last date, loc *time.Location) []time.Time {
	n := last.ordinal() - first.ordinal() + 1
	if n <= 0 {
		return nil
	}

	days := make([]time.Time, 0, n)

	for i := range int(n) {
		days = append(days, first.addDays(i).midnight(loc))
	}

	return days
}

// Boundaries returns the BucketCount+1 instants that delimit the buckets of
// the local day containing day. They are computed from wall-clock minutes,
// so on a DST transition day a bucket may be shorter or longer than its
// nominal width. The result is non-decreasing and contiguous.
func Boundaries(day time.Time, cfg Config) []time.Time {
	cfg = cfg.Normalize()
	d := dateOf(day.In(cfg.Location))
	width := cfg.BucketWidth()

	out := make([]time.Time, cfg.BucketCount+1)

	for i := range out {
		out[i] = wallClock(d, cfg.Interval.StartMinute+float64(i)*width, cfg.Location)

		if i > 0 && out[i].Before(out[i-1]) {
			out[i] = out[i-1]
		}
	}

	return out
}

// BucketStart returns the instant at which bucket index of day begins.
func BucketStart(day time.Time, index int, cfg Config) time.Time {
	cfg = cfg.Normalize()

	return wallClock(dateOf(day.In(cfg.Location)), cfg.Interval.StartMinute+float64(index)*cfg.BucketWidth(), cfg.Location)
}

// wallClock resolves a fractional minute of a local day to an instant.
// Wall times skipped by a DST gap resolve as time.Date documents.
func wallClock(d date, minute float64, loc *time.Location) time.Time {
	nanos := int64(minute * float64(time.Minute))
	whole := nanos / int64(time.Minute)
	rest := nanos % int64(time.Minute)

	return time.Date(d.year, d.month, d.day, 0, int(whole), 0, int(rest), loc)
}
