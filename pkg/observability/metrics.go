package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricSamplesRead       = "calheat.samples.read"
	metricSamplesDiscarded  = "calheat.samples.discarded"
	metricCellsEmitted      = "calheat.cells.emitted"
	metricBucketizeDuration = "calheat.bucketize.duration.seconds"
	metricRenderDuration    = "calheat.render.duration.seconds"
	metricRenderErrors      = "calheat.render.errors"

	attrReason = "reason"
	attrFormat = "format"

	reasonMissing     = "missing"
	reasonOutOfRange  = "out_of_range"
	reasonOutOfWindow = "out_of_window"
)

// durationBucketBoundaries covers 100us to 60s; a bucketize run over a few
// million samples stays well under a second.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// EngineMetrics holds the OTel instruments for heatmap runs.
type EngineMetrics struct {
	samplesRead       metric.Int64Counter
	samplesDiscarded  metric.Int64Counter
	cellsEmitted      metric.Int64Counter
	bucketizeDuration metric.Float64Histogram
	renderDuration    metric.Float64Histogram
	renderErrors      metric.Int64Counter
}

// RunStats holds the statistics of a single bucketize run, decoupled from
// engine types.
type RunStats struct {
	Samples     int
	Missing     int
	OutOfRange  int
	OutOfWindow int
	Cells       int
	Duration    time.Duration
}

// NewEngineMetrics creates the engine instruments from the given meter.
func NewEngineMetrics(mt metric.Meter) (*EngineMetrics, error) {
	read, err := mt.Int64Counter(metricSamplesRead,
		metric.WithDescription("Total samples read from series"),
		metric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSamplesRead, err)
	}

	discarded, err := mt.Int64Counter(metricSamplesDiscarded,
		metric.WithDescription("Samples dropped before aggregation, by reason"),
		metric.WithUnit("{sample}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSamplesDiscarded, err)
	}

	cells, err := mt.Int64Counter(metricCellsEmitted,
		metric.WithDescription("Total grid cells emitted"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCellsEmitted, err)
	}

	bucketizeDur, err := mt.Float64Histogram(metricBucketizeDuration,
		metric.WithDescription("Bucketize duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBucketizeDuration, err)
	}

	renderDur, err := mt.Float64Histogram(metricRenderDuration,
		metric.WithDescription("Render duration in seconds, by output format"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRenderDuration, err)
	}

	renderErrs, err := mt.Int64Counter(metricRenderErrors,
		metric.WithDescription("Total failed renders, by output format"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRenderErrors, err)
	}

	return &EngineMetrics{
		samplesRead:       read,
		samplesDiscarded:  discarded,
		cellsEmitted:      cells,
		bucketizeDuration: bucketizeDur,
		renderDuration:    renderDur,
		renderErrors:      renderErrs,
	}, nil
}

// RecordBucketize records a completed bucketize run.
// Safe to call on a nil receiver (no-op).
func (em *EngineMetrics) RecordBucketize(ctx context.Context, stats RunStats) {
	if em == nil {
		return
	}

	em.samplesRead.Add(ctx, int64(stats.Samples))
	em.cellsEmitted.Add(ctx, int64(stats.Cells))
	em.bucketizeDuration.Record(ctx, stats.Duration.Seconds())

	em.discard(ctx, reasonMissing, stats.Missing)
	em.discard(ctx, reasonOutOfRange, stats.OutOfRange)
	em.discard(ctx, reasonOutOfWindow, stats.OutOfWindow)
}

func (em *EngineMetrics) discard(ctx context.Context, reason string, n int) {
	if n == 0 {
		return
	}

	em.samplesDiscarded.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrReason, reason)))
}

// RecordRender records one render. A non-nil err also counts as a failure.
// Safe to call on a nil receiver (no-op).
func (em *EngineMetrics) RecordRender(ctx context.Context, format string, duration time.Duration, err error) {
	if em == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrFormat, format))

	em.renderDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		em.renderErrors.Add(ctx, 1, attrs)
	}
}
