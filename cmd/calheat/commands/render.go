package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/config"
	"github.com/Sumatoshi-tech/calheat/pkg/render/layout"
	"github.com/Sumatoshi-tech/calheat/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/calheat/pkg/render/svg"
)

const (
	renderCmdUse     = "render <series-file|->"
	renderCmdShort   = "Render a series as an SVG, HTML or JSON heatmap"
	renderArgCount   = 1
	renderOutputPerm = 0o644
	defaultPageTitle = "Calendar heatmap"
)

// ErrNoCells is returned when a render would produce an empty heatmap and
// the caller asked for that to fail.
var ErrNoCells = errors.New("no cells to render")

type renderFlags struct {
	output    string
	format    string
	title     string
	theme     string
	indicator float64
	failEmpty bool
}

// NewRenderCommand creates the render subcommand.
func NewRenderCommand(global *GlobalOptions) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   renderCmdUse,
		Short: renderCmdShort,
		Long: `Render buckets a time series by day and time of day and draws the grid.

Examples:
  calheat render cpu.csv -o cpu.svg
  calheat render cpu.json --format html -o cpu.html
  cat cpu.yaml | calheat render - --format json`,
		Args: cobra.ExactArgs(renderArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, &flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: svg, html or json (default from config)")
	cmd.Flags().StringVar(&flags.title, "title", "", "chart title (default from config)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "page theme: light or dark (default from config)")
	cmd.Flags().Float64Var(&flags.indicator, "indicator", 0, "mark this value on the legend")
	cmd.Flags().BoolVar(&flags.failEmpty, "fail-empty", false, "fail when no sample falls in the grid")

	return cmd
}

func runRender(cmd *cobra.Command, global *GlobalOptions, flags *renderFlags, path string) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := global.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, s.close(ctx)) }()

	applyRenderFlags(cmd, s.cfg, flags)

	grid, err := s.buildGrid(ctx, path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if flags.failEmpty && grid.Len() == 0 {
		return ErrNoCells
	}

	return s.render(ctx, grid, cmd.OutOrStdout())
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	if flags.format != "" {
		cfg.Render.Format = strings.ToLower(flags.format)
	}

	if flags.output != "" {
		cfg.Render.Output = flags.output
	}

	if flags.title != "" {
		cfg.Render.Title = flags.title
	}

	if flags.theme != "" {
		cfg.Render.Theme = string(plotpage.ParseTheme(flags.theme))
	}

	if cmd.Flags().Changed("indicator") {
		v := flags.indicator
		cfg.Render.Indicator = true
		cfg.Render.IndicatorValue = &v
	}
}

// render draws grid in the configured format to the configured output.
func (s *session) render(ctx context.Context, grid *bucket.Grid, stdout io.Writer) (err error) {
	format := s.cfg.Render.Format

	validateErr := s.cfg.Validate()
	if validateErr != nil {
		return fmt.Errorf("render: %w", validateErr)
	}

	ctx, span := s.providers.Tracer.Start(ctx, "calheat.render")
	defer span.End()

	span.SetAttributes(attribute.String("render.format", format))

	if s.cfg.Render.Output != "" {
		span.SetAttributes(attribute.String("render.output", s.cfg.Render.Output))
	}

	out, closeOut, err := openOutput(s.cfg.Render.Output, stdout)
	if err != nil {
		return spanError(span, err)
	}

	defer func() { err = errors.Join(err, closeOut()) }()

	cw := &countingWriter{w: out}
	start := time.Now()

	lo, hi := s.cfg.Domain(grid)
	fn := s.cfg.ColorScale(grid)

	switch format {
	case config.FormatHTML:
		err = s.writeHTML(cw, grid, fn, lo, hi)
	case config.FormatJSON:
		err = writeGridJSON(cw, grid, fn, lo, hi)
	default:
		err = s.writeSVG(cw, grid, fn, lo, hi)
	}

	s.metrics.RecordRender(ctx, format, time.Since(start), err)

	if err != nil {
		return spanError(span, fmt.Errorf("render %s: %w", format, err))
	}

	s.logger.InfoContext(ctx, "heatmap rendered",
		"format", format,
		"days", len(grid.Days),
		"cells", humanize.Comma(int64(grid.Len())),
		"samples", humanize.Comma(int64(grid.Stats.Total)),
		"discarded", humanize.Comma(int64(grid.Stats.Discarded())),
		"size", humanize.Bytes(uint64(cw.n)),
	)

	return nil
}

func (s *session) writeSVG(w io.Writer, grid *bucket.Grid, fn colorscale.Func, lo, hi float64) error {
	r := s.cfg.Render
	theme := plotpage.GetThemeConfig(plotpage.ParseTheme(r.Theme))

	opts := svg.DefaultOptions()
	opts.Title = r.Title
	opts.TextColor = theme.ChartText
	opts.AxisColor = theme.ChartAxis
	opts.BorderColor = theme.CellBorder
	opts.CellBorder = r.CellBorder
	opts.Tooltip = r.Tooltip

	if plotpage.ParseTheme(r.Theme) == plotpage.ThemeDark {
		opts.Background = theme.Surface
	}

	if r.Indicator {
		opts.Indicator = indicatorValue(r.IndicatorValue, grid)
	}

	return svg.Write(w, layout.New(grid, fn, s.cfg.LayoutOptions(lo, hi)), opts)
}

// indicatorValue returns the explicit value, or the latest cell's value.
func indicatorValue(explicit *float64, grid *bucket.Grid) *float64 {
	if explicit != nil {
		return explicit
	}

	if grid.Len() == 0 {
		return nil
	}

	latest := grid.Cells[0]
	for _, c := range grid.Cells[1:] {
		if c.Start.After(latest.Start) {
			latest = c
		}
	}

	v := latest.Value

	return &v
}

func (s *session) writeHTML(w io.Writer, grid *bucket.Grid, fn colorscale.Func, lo, hi float64) error {
	r := s.cfg.Render
	theme := plotpage.ParseTheme(r.Theme)

	title := r.Title
	if title == "" {
		title = defaultPageTitle
	}

	subtitle := fmt.Sprintf("%d days, %d buckets per day, %s", len(grid.Days), grid.BucketCount, grid.Aggregation)

	chart := plotpage.BuildHeatMap(plotpage.NewChartOpts(theme), plotpage.DefaultStyle(), grid, fn, plotpage.HeatmapOptions{
		Title:      title,
		Subtitle:   subtitle,
		Min:        lo,
		Max:        hi,
		CellBorder: r.CellBorder,
		Tooltip:    r.Tooltip,
		Decimals:   r.Decimals,
	})

	page := plotpage.NewPage(title, subtitle).WithTheme(theme)
	page.Add(plotpage.Section{
		Title:    "Heatmap",
		Subtitle: grid.Location.String(),
		Chart:    chart,
		Hint: plotpage.Hint{
			Title: "Reading the chart",
			Items: []string{
				"Each column is a day and each row a time-of-day bucket.",
				fmt.Sprintf("Cells show the %s of the samples in the bucket.", grid.Aggregation),
				fmt.Sprintf("%s samples, %s discarded.",
					humanize.Comma(int64(grid.Stats.Total)), humanize.Comma(int64(grid.Stats.Discarded()))),
			},
		},
	})

	return page.Render(w)
}

// openOutput returns stdout for an empty path or "-", otherwise a new file.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == stdinPath {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, renderOutputPerm)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, f.Close, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	return n, err
}

// gridDocument is the JSON rendering of a grid.
type gridDocument struct {
	Timezone      string         `json:"timezone"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	Aggregation   string         `json:"aggregation"`
	BucketCount   int            `json:"bucket_count"`
	BucketMinutes float64        `json:"bucket_minutes"`
	StartMinute   float64        `json:"start_minute"`
	EndMinute     float64        `json:"end_minute"`
	Min           float64        `json:"min"`
	Max           float64        `json:"max"`
	Days          []string       `json:"days"`
	Cells         []cellDocument `json:"cells"`
	Stats         statsDocument  `json:"stats"`
}

type cellDocument struct {
	Day     string  `json:"day"`
	Start   string  `json:"start"`
	Index   int     `json:"index"`
	Value   float64 `json:"value"`
	Samples int     `json:"samples"`
	Color   string  `json:"color"`
}

type statsDocument struct {
	Total       int `json:"total"`
	Used        int `json:"used"`
	Missing     int `json:"missing"`
	OutOfRange  int `json:"out_of_range"`
	OutOfWindow int `json:"out_of_window"`
}

const dayLayout = "2006-01-02"

func writeGridJSON(w io.Writer, grid *bucket.Grid, fn colorscale.Func, lo, hi float64) error {
	doc := gridDocument{
		Timezone:      grid.Location.String(),
		Aggregation:   string(grid.Aggregation),
		BucketCount:   grid.BucketCount,
		BucketMinutes: grid.BucketWidth(),
		StartMinute:   grid.Interval.StartMinute,
		EndMinute:     grid.Interval.EndMinute,
		Min:           lo,
		Max:           hi,
		Days:          make([]string, len(grid.Days)),
		Cells:         make([]cellDocument, len(grid.Cells)),
		Stats: statsDocument{
			Total:       grid.Stats.Total,
			Used:        grid.Stats.Used,
			Missing:     grid.Stats.Missing,
			OutOfRange:  grid.Stats.OutOfRange,
			OutOfWindow: grid.Stats.OutOfWindow,
		},
	}

	if !grid.From.IsZero() {
		doc.From = grid.From.Format(time.RFC3339)
		doc.To = grid.To.Format(time.RFC3339)
	}

	for i, d := range grid.Days {
		doc.Days[i] = d.Format(dayLayout)
	}

	for i, c := range grid.Cells {
		doc.Cells[i] = cellDocument{
			Day:     c.Day.Format(dayLayout),
			Start:   c.Start.Format(time.RFC3339),
			Index:   c.Index,
			Value:   c.Value,
			Samples: c.Samples,
			Color:   fn(c.Value),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}

	return nil
}
