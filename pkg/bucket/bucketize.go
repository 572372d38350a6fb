package bucket

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/aggregate"
	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

// cellKey addresses one accumulator.
type cellKey struct {
	day   date
	index int
}

func compareKeys(a, b cellKey) int {
	if c := a.day.compare(b.day); c != 0 {
		return c
	}

	return a.index - b.index
}

// partial holds the accumulators of a contiguous run of samples.
type partial struct {
	cells map[cellKey]*aggregate.Accumulator
	stats Stats
}

func newPartial() *partial {
	return &partial{cells: make(map[cellKey]*aggregate.Accumulator)}
}

// merge folds other into p.
func (p *partial) merge(other *partial) {
	for key, acc := range other.cells {
		if mine, ok := p.cells[key]; ok {
			mine.Merge(acc)

			continue
		}

		p.cells[key] = acc
	}

	p.stats = p.stats.add(other.stats)
}

// Bucketize aggregates samples into the sparse day by bucket grid described
// by cfg. It never fails: invalid configuration is normalized, and missing,
// out-of-range or out-of-window samples are counted and skipped.
func Bucketize(samples []timeseries.Sample, cfg Config) Grid {
	cfg = resolveRange(samples, cfg.Normalize())

	p := newPartial()
	fold(p, samples, 0, cfg)

	return assemble(p, cfg)
}

// resolveRange fills an unset display range from the sample span.
func resolveRange(samples []timeseries.Sample, cfg Config) Config {
	if !cfg.From.IsZero() && !cfg.To.IsZero() {
		return cfg
	}

	series := timeseries.Series{Samples: samples}

	from, to, ok := series.Span()
	if !ok {
		return cfg
	}

	if cfg.From.IsZero() {
		cfg.From = from
	}

	if cfg.To.IsZero() {
		cfg.To = to
	}

	if cfg.From.After(cfg.To) {
		cfg.From, cfg.To = cfg.To, cfg.From
	}

	return cfg
}

// fold assigns samples to accumulators. offset is the position of
// samples[0] in the full input, so that ties resolve identically however
// the input is partitioned.
func fold(p *partial, samples []timeseries.Sample, offset int, cfg Config) {
	for i, smp := range samples {
		p.stats.Total++

		if smp.Missing() {
			p.stats.Missing++

			continue
		}

		if cfg.From.IsZero() || smp.Time.Before(cfg.From) || smp.Time.After(cfg.To) {
			p.stats.OutOfRange++

			continue
		}

		local := smp.Time.In(cfg.Location)

		index, ok := cfg.BucketIndex(wallMinute(local))
		if !ok {
			p.stats.OutOfWindow++

			continue
		}

		key := cellKey{day: dateOf(local), index: index}

		acc, found := p.cells[key]
		if !found {
			acc = &aggregate.Accumulator{}
			p.cells[key] = acc
		}

		acc.Add(smp.Time, offset+i, smp.Value)
		p.stats.Used++
	}
}

// assemble reduces the accumulators and orders the cells.
func assemble(p *partial, cfg Config) Grid {
	grid := Grid{
		BucketCount: cfg.BucketCount,
		Interval:    cfg.Interval,
		Location:    cfg.Location,
		Aggregation: cfg.Aggregation,
		From:        cfg.From,
		To:          cfg.To,
		Stats:       p.stats,
	}

	if !cfg.From.IsZero() {
		grid.Days = Days(cfg)
	}

	keys := make([]cellKey, 0, len(p.cells))
	for key := range p.cells {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, compareKeys)

	grid.Cells = make([]Cell, 0, len(keys))
	width := cfg.BucketWidth()

	for _, key := range keys {
		acc := p.cells[key]

		value, ok := acc.Result(cfg.Aggregation)
		if !ok {
			continue
		}

		grid.Cells = append(grid.Cells, Cell{
			Day:     key.day.midnight(cfg.Location),
			Start:   wallClock(key.day, cfg.Interval.StartMinute+float64(key.index)*width, cfg.Location),
			Index:   key.index,
			Value:   value,
			Samples: acc.Len(),
		})
	}

	return grid
}

// Midpoint returns the instant halfway through the cell's nominal bucket.
func (c Cell) Midpoint(bucketWidthMinutes float64) time.Time {
	return c.Start.Add(time.Duration(bucketWidthMinutes / 2 * float64(time.Minute)))
}
