package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/observability"
	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

// stdinPath selects standard input as the series source.
const stdinPath = "-"

// ErrSeriesFormat is returned when the series format can be neither read
// from the configuration nor guessed from the file name.
var ErrSeriesFormat = errors.New("cannot determine series format (set series.format)")

// loadSeries reads the series at path, or from stdin when path is "-".
func (s *session) loadSeries(ctx context.Context, path string, stdin io.Reader) (*timeseries.Series, error) {
	ctx, span := s.providers.Tracer.Start(ctx, "calheat.load")
	defer span.End()

	format, err := s.seriesFormat(path)
	if err != nil {
		return nil, spanError(span, err)
	}

	span.SetAttributes(
		attribute.String("series.format", string(format)),
		attribute.String("series.path", path),
	)

	r := stdin

	if path != stdinPath {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, spanError(span, fmt.Errorf("open series: %w", openErr))
		}

		defer f.Close()

		r = f
	}

	series, err := timeseries.Load(r, format, s.cfg.LoadOptions())
	if err != nil {
		return nil, spanError(span, fmt.Errorf("load series: %w", err))
	}

	span.SetAttributes(attribute.Int("series.samples", series.Len()))

	if series.Skipped > 0 {
		s.logger.WarnContext(ctx, "rows without a readable timestamp skipped",
			"skipped", humanize.Comma(int64(series.Skipped)))
	}

	return series, nil
}

func (s *session) seriesFormat(path string) (timeseries.Format, error) {
	if s.cfg.Series.Format != "" {
		format, err := timeseries.ParseFormat(s.cfg.Series.Format)
		if err != nil {
			return "", fmt.Errorf("parse series format: %w", err)
		}

		return format, nil
	}

	format, ok := timeseries.FormatFromPath(path)
	if !ok {
		return "", ErrSeriesFormat
	}

	return format, nil
}

// bucketize builds the grid and records engine metrics for the run.
func (s *session) bucketize(ctx context.Context, series *timeseries.Series) (*bucket.Grid, error) {
	ctx, span := s.providers.Tracer.Start(ctx, "calheat.bucketize")
	defer span.End()

	cfg := s.cfg.BucketConfig()

	span.SetAttributes(
		attribute.Int("bucket.count", cfg.BucketCount),
		attribute.String("bucket.aggregation", string(cfg.Aggregation)),
		attribute.String("bucket.timezone", cfg.Location.String()),
	)

	start := time.Now()

	grid, err := bucket.BucketizeParallel(ctx, series.Samples, cfg, s.cfg.Bucket.Workers)
	if err != nil {
		return nil, spanError(span, err)
	}

	elapsed := time.Since(start)

	s.metrics.RecordBucketize(ctx, observability.RunStats{
		Samples:     grid.Stats.Total,
		Missing:     grid.Stats.Missing,
		OutOfRange:  grid.Stats.OutOfRange,
		OutOfWindow: grid.Stats.OutOfWindow,
		Cells:       grid.Len(),
		Duration:    elapsed,
	})

	span.SetAttributes(
		attribute.Int("grid.days", len(grid.Days)),
		attribute.Int("grid.cells", grid.Len()),
	)

	s.logger.DebugContext(ctx, "grid built",
		"samples", humanize.Comma(int64(grid.Stats.Total)),
		"used", humanize.Comma(int64(grid.Stats.Used)),
		"discarded", humanize.Comma(int64(grid.Stats.Discarded())),
		"days", len(grid.Days),
		"cells", humanize.Comma(int64(grid.Len())),
		"elapsed", elapsed,
	)

	return &grid, nil
}

// buildGrid loads a series and bucketizes it.
func (s *session) buildGrid(ctx context.Context, path string, stdin io.Reader) (*bucket.Grid, error) {
	series, err := s.loadSeries(ctx, path, stdin)
	if err != nil {
		return nil, err
	}

	return s.bucketize(ctx, series)
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
