// Package timeseries holds the single-series input model consumed by the
// bucketizer and the loaders that read it from JSON, YAML and CSV documents.
package timeseries

import (
	"math"
	"time"
)

// Sample is one observation. Valid is false for missing values; such samples
// are kept so callers can count them but never contribute to aggregation.
type Sample struct {
	Time  time.Time
	Value float64
	Valid bool
}

// Missing reports whether the sample carries no usable value.
func (s Sample) Missing() bool {
	return !s.Valid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0)
}

// Series is a named, fully materialized time series in arbitrary order.
type Series struct {
	Name    string
	Samples []Sample

	// Skipped counts input rows dropped because their timestamp could not be read.
	Skipped int
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Samples)
}

// Span returns the earliest and latest timestamps of the series.
// ok is false for an empty series.
func (s *Series) Span() (from, to time.Time, ok bool) {
	if len(s.Samples) == 0 {
		return time.Time{}, time.Time{}, false
	}

	from, to = s.Samples[0].Time, s.Samples[0].Time

	for _, smp := range s.Samples[1:] {
		if smp.Time.Before(from) {
			from = smp.Time
		}

		if smp.Time.After(to) {
			to = smp.Time
		}
	}

	return from, to, true
}

// FromColumns builds a series from parallel time and value columns.
// A nil value is a missing sample. Columns of unequal length are truncated
// to the shorter one.
func FromColumns(name string, times []time.Time, values []*float64) *Series {
	n := min(len(times), len(values))
	samples := make([]Sample, n)

	for i := range n {
		samples[i] = Sample{Time: times[i]}

		if values[i] != nil {
			samples[i].Value = *values[i]
			samples[i].Valid = true
		}
	}

	return &Series{Name: name, Samples: samples}
}

// Point returns a valid sample. It is a convenience for building series in code.
func Point(t time.Time, v float64) Sample {
	return Sample{Time: t, Value: v, Valid: true}
}

// Gap returns a missing sample at t.
func Gap(t time.Time) Sample {
	return Sample{Time: t}
}
