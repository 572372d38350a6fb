package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sumatoshi-tech/calheat/pkg/aggregate"
	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/legend"
	"github.com/Sumatoshi-tech/calheat/pkg/render/layout"
	"github.com/Sumatoshi-tech/calheat/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

// Sentinel validation errors.
var (
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrNegativeWorkers     = errors.New("bucket workers must not be negative")
)

// Output formats accepted by render.format.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Palette kind aliases accepted in addition to the colorscale kinds.
const kindFieldOptions = "fieldoptions"

const nullTransparent = "transparent"

const hoursPerDay = 24

// Config is the top-level configuration struct for calheat.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Series    SeriesConfig    `mapstructure:"series"`
	Bucket    BucketConfig    `mapstructure:"bucket"`
	Palette   PaletteConfig   `mapstructure:"palette"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// SeriesConfig selects how a series file is read.
type SeriesConfig struct {
	Format     string `mapstructure:"format"`
	TimeField  string `mapstructure:"time_field"`
	ValueField string `mapstructure:"value_field"`
}

// BucketConfig holds bucketization settings. FromHour and ToHour bound the
// daily interval; a ToHour of zero means the end of the day.
type BucketConfig struct {
	Timezone    string `mapstructure:"timezone"`
	Aggregation string `mapstructure:"aggregation"`
	RangeFrom   string `mapstructure:"range_from"`
	RangeTo     string `mapstructure:"range_to"`
	FromHour    int    `mapstructure:"from_hour"`
	ToHour      int    `mapstructure:"to_hour"`
	Count       int    `mapstructure:"count"`
	Workers     int    `mapstructure:"workers"`
}

// PaletteConfig holds color scale settings. Min and Max are optional; the
// grid's value range is used when they are unset.
type PaletteConfig struct {
	Kind       string           `mapstructure:"kind"`
	Scheme     string           `mapstructure:"scheme"`
	NullColor  string           `mapstructure:"null_color"`
	Space      string           `mapstructure:"color_space"`
	Center     *float64         `mapstructure:"center"`
	Min        *float64         `mapstructure:"min"`
	Max        *float64         `mapstructure:"max"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Invert     bool             `mapstructure:"invert"`
	Diverging  bool             `mapstructure:"diverging"`
}

// ThresholdsConfig describes custom stops or external threshold steps.
type ThresholdsConfig struct {
	Mode  string       `mapstructure:"mode"`
	Base  string       `mapstructure:"base"`
	Steps []StepConfig `mapstructure:"steps"`
}

// StepConfig is one threshold step.
type StepConfig struct {
	Color string  `mapstructure:"color"`
	Value float64 `mapstructure:"value"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Format         string         `mapstructure:"format"`
	Output         string         `mapstructure:"output"`
	Title          string         `mapstructure:"title"`
	Theme          string         `mapstructure:"theme"`
	Quality        string         `mapstructure:"legend_quality"`
	Regions        []RegionConfig `mapstructure:"regions"`
	IndicatorValue *float64       `mapstructure:"indicator_value"`
	Width          float64        `mapstructure:"width"`
	Height         float64        `mapstructure:"height"`
	Decimals       int            `mapstructure:"decimals"`
	CellBorder     bool           `mapstructure:"cell_border"`
	Tooltip        bool           `mapstructure:"tooltip"`
	Legend         bool           `mapstructure:"legend"`
	Indicator      bool           `mapstructure:"value_indicator"`
}

// RegionConfig is a highlighted time-of-day band in HH:MM notation.
type RegionConfig struct {
	From  string `mapstructure:"from"`
	To    string `mapstructure:"to"`
	Color string `mapstructure:"color"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry and Prometheus textfile settings.
type TelemetryConfig struct {
	OTLPEndpoint    string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders     string  `mapstructure:"otlp_headers"`
	MetricsTextfile string  `mapstructure:"metrics_textfile"`
	Environment     string  `mapstructure:"environment"`
	SampleRatio     float64 `mapstructure:"sample_ratio"`
	OTLPInsecure    bool    `mapstructure:"otlp_insecure"`
}

// Validate rejects values the CLI cannot work with. Everything else is
// absorbed by Normalize.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Render.Format)) {
	case FormatSVG, FormatHTML, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, c.Render.Format)
	}

	if c.Bucket.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWorkers, c.Bucket.Workers)
	}

	return nil
}

// Normalize replaces invalid values with safe defaults in place and returns
// one human-readable warning per replacement.
func (c *Config) Normalize() []string {
	var w warnings

	c.normalizeSeries(&w)
	c.normalizeBucket(&w)
	c.normalizePalette(&w)
	c.normalizeRender(&w)
	c.normalizeLogging(&w)
	c.normalizeTelemetry(&w)

	return w
}

type warnings []string

func (w *warnings) addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

func (c *Config) normalizeSeries(w *warnings) {
	c.Series.Format = strings.ToLower(strings.TrimSpace(c.Series.Format))
	if c.Series.Format == "" {
		return
	}

	_, err := timeseries.ParseFormat(c.Series.Format)
	if err != nil {
		w.addf("series.format %q is unknown, guessing from the file extension", c.Series.Format)
		c.Series.Format = DefaultSeriesFormat
	}
}

func (c *Config) normalizeBucket(w *warnings) {
	b := &c.Bucket

	if _, ok := bucket.ResolveLocation(b.Timezone); !ok {
		w.addf("bucket.timezone %q is unknown, using UTC", b.Timezone)
		b.Timezone = "utc"
	}

	if b.FromHour < 0 || b.FromHour > hoursPerDay {
		w.addf("bucket.from_hour %d is out of range, clamping", b.FromHour)
		b.FromHour = min(max(b.FromHour, 0), hoursPerDay)
	}

	if b.ToHour < 0 || b.ToHour > hoursPerDay {
		w.addf("bucket.to_hour %d is out of range, clamping", b.ToHour)
		b.ToHour = min(max(b.ToHour, 0), hoursPerDay)
	}

	if b.Count < 1 {
		w.addf("bucket.count %d is below one, using 1", b.Count)
		b.Count = 1
	}

	if _, ok := aggregate.ParseKind(b.Aggregation); !ok {
		w.addf("bucket.aggregation %q is unknown, using %s", b.Aggregation, aggregate.DefaultKind)
		b.Aggregation = string(aggregate.DefaultKind)
	}

	if b.RangeFrom != "" {
		if _, ok := timeseries.ParseTime(b.RangeFrom); !ok {
			w.addf("bucket.range_from %q is not a timestamp, ignoring", b.RangeFrom)
			b.RangeFrom = ""
		}
	}

	if b.RangeTo != "" {
		if _, ok := timeseries.ParseTime(b.RangeTo); !ok {
			w.addf("bucket.range_to %q is not a timestamp, ignoring", b.RangeTo)
			b.RangeTo = ""
		}
	}
}

func (c *Config) normalizePalette(w *warnings) {
	p := &c.Palette

	if _, ok := parseKind(p.Kind); !ok {
		w.addf("palette.kind %q is unknown, using %s", p.Kind, DefaultPaletteKind)
		p.Kind = DefaultPaletteKind
	}

	if _, ok := colorscale.Lookup(p.Scheme); !ok {
		w.addf("palette.scheme %q is unknown, using %s", p.Scheme, colorscale.DefaultScheme)
		p.Scheme = colorscale.DefaultScheme
	}

	if _, ok := colorscale.ParseSpace(p.Space); !ok {
		w.addf("palette.color_space %q is unknown, using %s", p.Space, colorscale.DefaultSpace)
		p.Space = string(colorscale.DefaultSpace)
	}

	if !validColor(p.NullColor) {
		w.addf("palette.null_color %q is not a color, using %s", p.NullColor, DefaultPaletteNullColor)
		p.NullColor = DefaultPaletteNullColor
	}

	if _, ok := parseMode(p.Thresholds.Mode); !ok {
		w.addf("palette.thresholds.mode %q is unknown, using %s", p.Thresholds.Mode, DefaultThresholdMode)
		p.Thresholds.Mode = DefaultThresholdMode
	}

	for i, s := range p.Thresholds.Steps {
		if !validColor(s.Color) {
			w.addf("palette.thresholds.steps[%d].color %q is not a color", i, s.Color)
		}
	}

	if p.Min != nil && p.Max != nil && *p.Min >= *p.Max {
		w.addf("palette.min %g is not below palette.max %g, values will render as null", *p.Min, *p.Max)
	}
}

func (c *Config) normalizeRender(w *warnings) {
	r := &c.Render

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))

	if r.Width <= 0 {
		w.addf("render.width %g is not positive, using %g", r.Width, DefaultRenderWidth)
		r.Width = DefaultRenderWidth
	}

	if r.Height <= 0 {
		w.addf("render.height %g is not positive, using %g", r.Height, DefaultRenderHeight)
		r.Height = DefaultRenderHeight
	}

	if r.Decimals < 0 {
		w.addf("render.decimals %d is negative, using %d", r.Decimals, DefaultRenderDecimals)
		r.Decimals = DefaultRenderDecimals
	}

	if _, ok := legend.ParseQuality(r.Quality); !ok {
		w.addf("render.legend_quality %q is unknown, using %s", r.Quality, legend.DefaultQuality)
		r.Quality = string(legend.DefaultQuality)
	}

	theme := strings.ToLower(strings.TrimSpace(r.Theme))
	if theme != string(plotpage.ThemeLight) && theme != string(plotpage.ThemeDark) {
		w.addf("render.theme %q is unknown, using %s", r.Theme, plotpage.ThemeLight)
		r.Theme = string(plotpage.ThemeLight)
	}

	kept := r.Regions[:0]

	for i, reg := range r.Regions {
		if _, err := reg.region(); err != nil {
			w.addf("render.regions[%d] dropped: %v", i, err)

			continue
		}

		kept = append(kept, reg)
	}

	r.Regions = kept
}

func (c *Config) normalizeLogging(w *warnings) {
	if _, ok := parseLevel(c.Logging.Level); !ok {
		w.addf("logging.level %q is unknown, using %s", c.Logging.Level, DefaultLoggingLevel)
		c.Logging.Level = DefaultLoggingLevel
	}
}

func (c *Config) normalizeTelemetry(w *warnings) {
	t := &c.Telemetry

	if t.SampleRatio < 0 || t.SampleRatio > 1 {
		w.addf("telemetry.sample_ratio %g is outside [0, 1], clamping", t.SampleRatio)
		t.SampleRatio = min(max(t.SampleRatio, 0), 1)
	}
}

// BucketConfig translates the bucket section into an engine configuration.
func (c *Config) BucketConfig() bucket.Config {
	b := c.Bucket

	loc, _ := bucket.ResolveLocation(b.Timezone)
	kind, _ := aggregate.ParseKind(b.Aggregation)

	cfg := bucket.Config{
		Location:    loc,
		Interval:    bucket.HoursInterval(b.FromHour, b.ToHour),
		BucketCount: b.Count,
		Aggregation: kind,
	}

	if from, ok := timeseries.ParseTimeIn(b.RangeFrom, loc); ok {
		cfg.From = from.In(loc)
	}

	if to, ok := timeseries.ParseTimeIn(b.RangeTo, loc); ok {
		cfg.To = to.In(loc)
	}

	return cfg.Normalize()
}

// Domain resolves the palette domain. Unset bounds take the grid's value
// range; a grid without values leaves them at zero, which renders as null.
func (c *Config) Domain(g *bucket.Grid) (lo, hi float64) {
	if g != nil {
		lo, hi, _ = g.Range()
	}

	if c.Palette.Min != nil {
		lo = *c.Palette.Min
	}

	if c.Palette.Max != nil {
		hi = *c.Palette.Max
	}

	return lo, hi
}

// ColorPalette translates the palette section into an engine palette over the
// domain [lo, hi].
func (c *Config) ColorPalette(lo, hi float64) colorscale.Palette {
	p := c.Palette

	kind, _ := parseKind(p.Kind)
	if kind == colorscale.KindSequential && p.Diverging {
		kind = colorscale.KindDiverging
	}

	switch kind {
	case colorscale.KindDiverging:
		return colorscale.Diverging{Scheme: p.Scheme, Min: lo, Max: hi, Center: p.Center, Invert: p.Invert}
	case colorscale.KindCustom:
		mode, _ := parseMode(p.Thresholds.Mode)
		space, _ := colorscale.ParseSpace(p.Space)

		return colorscale.Custom{Space: space, Min: lo, Max: hi, Mode: mode, Steps: c.steps()}
	case colorscale.KindExternal:
		return colorscale.External{Format: colorscale.Thresholds(c.thresholdBase(), c.steps())}
	default:
		return colorscale.Sequential{Scheme: p.Scheme, Min: lo, Max: hi, Invert: p.Invert}
	}
}

func (c *Config) steps() []colorscale.Step {
	steps := make([]colorscale.Step, 0, len(c.Palette.Thresholds.Steps))

	for _, s := range c.Palette.Thresholds.Steps {
		steps = append(steps, colorscale.Step{Position: s.Value, Color: s.Color})
	}

	return steps
}

func (c *Config) thresholdBase() string {
	if c.Palette.Thresholds.Base == "" {
		return DefaultThresholdBase
	}

	return c.Palette.Thresholds.Base
}

// ColorScale builds the color function for a grid.
func (c *Config) ColorScale(g *bucket.Grid) colorscale.Func {
	lo, hi := c.Domain(g)

	return colorscale.Build(c.ColorPalette(lo, hi), c.Palette.NullColor)
}

// LoadOptions returns the series loader options.
func (c *Config) LoadOptions() timeseries.Options {
	return timeseries.Options{TimeField: c.Series.TimeField, ValueField: c.Series.ValueField}
}

// LayoutOptions returns the canvas options for a legend domain [lo, hi].
func (c *Config) LayoutOptions(lo, hi float64) layout.Options {
	r := c.Render
	quality, _ := legend.ParseQuality(r.Quality)

	return layout.Options{
		Width:    r.Width,
		Height:   r.Height,
		Legend:   r.Legend,
		Quality:  quality,
		Min:      lo,
		Max:      hi,
		Regions:  c.Regions(),
		Decimals: r.Decimals,
	}
}

// Regions returns the parseable time regions.
func (c *Config) Regions() []layout.Region {
	regions := make([]layout.Region, 0, len(c.Render.Regions))

	for _, rc := range c.Render.Regions {
		reg, err := rc.region()
		if err != nil {
			continue
		}

		regions = append(regions, reg)
	}

	return regions
}

func (r RegionConfig) region() (layout.Region, error) {
	start, err := layout.ParseClock(r.From)
	if err != nil {
		return layout.Region{}, fmt.Errorf("parse from: %w", err)
	}

	end, err := layout.ParseClock(r.To)
	if err != nil {
		return layout.Region{}, fmt.Errorf("parse to: %w", err)
	}

	return layout.Region{Start: start, End: end, Color: r.Color}, nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Logging.Level)

	return level
}

func parseKind(name string) (colorscale.Kind, bool) {
	switch k := strings.ToLower(strings.TrimSpace(name)); k {
	case "", string(colorscale.KindSequential):
		return colorscale.KindSequential, true
	case string(colorscale.KindDiverging), string(colorscale.KindCustom), string(colorscale.KindExternal):
		return colorscale.Kind(k), true
	case kindFieldOptions:
		return colorscale.KindExternal, true
	default:
		return colorscale.KindSequential, false
	}
}

func parseMode(name string) (colorscale.PositionMode, bool) {
	switch m := colorscale.PositionMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return colorscale.Percentage, true
	case colorscale.Absolute, colorscale.Percentage:
		return m, true
	default:
		return colorscale.Percentage, false
	}
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func validColor(css string) bool {
	if strings.EqualFold(strings.TrimSpace(css), nullTransparent) {
		return true
	}

	_, ok := colorscale.ParseColor(css)

	return ok
}
