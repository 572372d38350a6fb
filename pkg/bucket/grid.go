package bucket

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/aggregate"
)

// Cell is one non-empty (day, bucket) pair of the grid.
type Cell struct {
	// Day is local midnight of the cell's day.
	Day time.Time

	// Start is the instant at which the bucket begins.
	Start time.Time

	// Index is the bucket position within the day, from 0.
	Index int

	// Value is the aggregated value of the contributing samples.
	Value float64

	// Samples is the number of contributing samples.
	Samples int
}

// Stats describes how the input samples were consumed.
type Stats struct {
	Total       int
	Used        int
	Missing     int
	OutOfRange  int
	OutOfWindow int
}

// Discarded returns the number of samples that did not reach any cell.
func (s Stats) Discarded() int {
	return s.Missing + s.OutOfRange + s.OutOfWindow
}

func (s Stats) add(other Stats) Stats {
	return Stats{
		Total:       s.Total + other.Total,
		Used:        s.Used + other.Used,
		Missing:     s.Missing + other.Missing,
		OutOfRange:  s.OutOfRange + other.OutOfRange,
		OutOfWindow: s.OutOfWindow + other.OutOfWindow,
	}
}

// Grid is the sparse result of a bucketization run. Cells are ordered by
// day, then by bucket index, and only cells with at least one contributing
// sample are present.
type Grid struct {
	Cells       []Cell
	Days        []time.Time
	BucketCount int
	Interval    DailyInterval
	Location    *time.Location
	Aggregation aggregate.Kind
	From        time.Time
	To          time.Time
	Stats       Stats
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Range returns the smallest and largest cell values.
// ok is false for an empty grid.
func (g *Grid) Range() (lo, hi float64, ok bool) {
	if len(g.Cells) == 0 {
		return 0, 0, false
	}

	lo, hi = g.Cells[0].Value, g.Cells[0].Value

	for _, c := range g.Cells[1:] {
		lo = min(lo, c.Value)
		hi = max(hi, c.Value)
	}

	return lo, hi, true
}

// DayIndex returns the column of the local day containing t, or -1 when the
// day is outside the grid.
func (g *Grid) DayIndex(t time.Time) int {
	if len(g.Days) == 0 {
		return -1
	}

	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}

	idx := dateOf(t.In(loc)).ordinal() - dateOf(g.Days[0].In(loc)).ordinal()
	if idx < 0 || idx >= int64(len(g.Days)) {
		return -1
	}

	return int(idx)
}

// Lookup finds the cell for the given day and bucket index.
func (g *Grid) Lookup(day time.Time, index int) (Cell, bool) {
	col := g.DayIndex(day)
	if col < 0 {
		return Cell{}, false
	}

	pos, found := slices.BinarySearchFunc(g.Cells, [2]int{col, index}, func(c Cell, key [2]int) int {
		if d := g.DayIndex(c.Day) - key[0]; d != 0 {
			return d
		}

		return c.Index - key[1]
	})
	if !found {
		return Cell{}, false
	}

	return g.Cells[pos], true
}

// Config returns the configuration that produced the grid.
func (g *Grid) Config() Config {
	return Config{
		Location:    g.Location,
		Interval:    g.Interval,
		BucketCount: g.BucketCount,
		Aggregation: g.Aggregation,
		From:        g.From,
		To:          g.To,
	}
}

// BucketWidth returns the bucket width in minutes.
func (g *Grid) BucketWidth() float64 {
	return g.Config().BucketWidth()
}
