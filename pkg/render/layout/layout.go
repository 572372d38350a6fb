// Package layout places a bucketized grid on a pixel canvas. It computes
// the cell rectangles, axis ticks, time region bands and legend strip that
// every renderer draws, and maps pointer positions back to cells. Pixel
// rounding happens here and nowhere in the engine.
package layout

import (
	"math"
	"time"

	"github.com/Sumatoshi-tech/calheat/pkg/axis"
	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/legend"
)

// Canvas defaults.
const (
	DefaultWidth    = 800.0
	DefaultHeight   = 400.0
	DefaultFontSize = 12.0
	DefaultDecimals = 2
)

const (
	// axisLeft is reserved for hour labels.
	axisLeft = 40.0
	// axisBottom is reserved for day labels.
	axisBottom   = 20.0
	paddingRight = 10.0

	legendHeight     = 35.0
	legendPadTop     = 15.0
	legendAxisHeight = 20.0
)

// TooltipLayout formats the bucket start in tooltips.
const TooltipLayout = "2006-01-02 15:04"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, right and bottom edges
// excluded.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Options controls the canvas.
type Options struct {
	Width  float64
	Height float64

	// Legend reserves a strip below the heatmap for the color spectrum.
	Legend  bool
	Quality legend.Quality

	// Min and Max are the value domain shown by the legend.
	Min float64
	Max float64

	Regions []Region

	// Decimals is passed to legend.FormatValue for tooltips and legend ticks.
	Decimals int

	// Measure sizes day labels. ApproxMeasure(DefaultFontSize) when nil.
	Measure axis.MeasureFunc
}

// DefaultOptions returns a canvas with a legend and high quality gradient.
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Legend:   true,
		Quality:  legend.DefaultQuality,
		Decimals: DefaultDecimals,
	}
}

// CellBox is a laid out grid cell.
type CellBox struct {
	Rect
	Cell    bucket.Cell
	Color   string
	Tooltip string
}

// AxisTick is a tick placed on the canvas.
type AxisTick struct {
	X, Y  float64
	Label string
}

// Legend is the laid out color spectrum with its value axis.
type Legend struct {
	Rect
	// SpectrumHeight is the height of the gradient bar at the top of Rect.
	SpectrumHeight float64
	Stops          []legend.Stop
	Ticks          []AxisTick
	Min, Max       float64
}

// Layout is the complete geometry of one heatmap.
type Layout struct {
	Width  float64
	Height float64

	// Plot is the area covered by cells.
	Plot Rect

	Cells     []CellBox
	Regions   []Band
	DayTicks  []AxisTick
	HourTicks []AxisTick
	Legend    *Legend

	grid     *bucket.Grid
	options  Options
	color    colorscale.Func
	interval bucket.DailyInterval
}

// New lays out g on a canvas. color fills the cells and the legend.
func New(g *bucket.Grid, color colorscale.Func, opts Options) *Layout {
	opts = withDefaults(opts)

	l := &Layout{
		Width:    opts.Width,
		Height:   opts.Height,
		grid:     g,
		options:  opts,
		color:    color,
		interval: g.Interval,
	}

	heatmapHeight := opts.Height
	if opts.Legend {
		heatmapHeight -= legendHeight + legendPadTop
	}

	l.Plot = Rect{
		X: axisLeft,
		Y: 0,
		W: math.Max(opts.Width-axisLeft-paddingRight, 0),
		H: math.Max(heatmapHeight-axisBottom, 0),
	}

	bands := newBandScale(len(g.Days), l.Plot.W)

	l.layoutCells(bands)
	l.layoutDayTicks(bands)
	l.layoutHourTicks()
	l.layoutRegions()

	if opts.Legend {
		l.layoutLegend(Rect{
			X: axisLeft,
			Y: math.Max(heatmapHeight, 0) + legendPadTop,
			W: l.Plot.W,
			H: legendHeight,
		})
	}

	return l
}

func withDefaults(opts Options) Options {
	if opts.Width <= 0 || math.IsNaN(opts.Width) {
		opts.Width = DefaultWidth
	}

	if opts.Height <= 0 || math.IsNaN(opts.Height) {
		opts.Height = DefaultHeight
	}

	if opts.Measure == nil {
		opts.Measure = axis.ApproxMeasure(DefaultFontSize)
	}

	opts.Quality, _ = legend.ParseQuality(string(opts.Quality))

	return opts
}

// bandScale divides a width into equal whole-pixel columns, centered.
type bandScale struct {
	n         int
	offset    float64
	step      float64
	cellWidth float64
}

func newBandScale(n int, width float64) bandScale {
	if n <= 0 {
		return bandScale{}
	}

	step := math.Floor(width / float64(n))
	offset := math.Round((width - step*float64(n)) / 2)

	return bandScale{
		n:         n,
		offset:    offset,
		step:      step,
		cellWidth: math.Ceil(step + 0.5),
	}
}

func (b bandScale) x(col int) float64 {
	return b.offset + float64(col)*b.step
}

// column returns the band under x relative to the plot origin.
func (b bandScale) column(x float64) (int, bool) {
	if b.n == 0 || b.step <= 0 {
		return 0, false
	}

	col := int(math.Floor((x - b.offset) / b.step))
	if col < 0 || col >= b.n {
		return 0, false
	}

	return col, true
}

// y maps a wall-clock minute to a rounded offset from the plot top.
func (l *Layout) y(minute float64) float64 {
	width := l.interval.Width()
	if width <= 0 {
		return 0
	}

	return math.Round((minute - l.interval.StartMinute) / width * l.Plot.H)
}

func (l *Layout) layoutCells(bands bandScale) {
	if bands.n == 0 {
		return
	}

	bw := l.grid.BucketWidth()
	l.Cells = make([]CellBox, 0, len(l.grid.Cells))

	for _, c := range l.grid.Cells {
		col := l.grid.DayIndex(c.Day)
		if col < 0 {
			continue
		}

		start := l.interval.StartMinute + float64(c.Index)*bw
		y0 := l.y(start)
		y1 := l.y(start + bw)

		l.Cells = append(l.Cells, CellBox{
			Rect: Rect{
				X: l.Plot.X + bands.x(col),
				Y: l.Plot.Y + y0,
				W: bands.cellWidth,
				H: y1 - y0 + 1,
			},
			Cell:    c,
			Color:   l.fill(c.Value),
			Tooltip: l.Tooltip(c),
		})
	}
}

func (l *Layout) fill(v float64) string {
	if l.color == nil {
		return colorscale.DefaultNullColor
	}

	return l.color(v)
}

// Tooltip describes a cell as its local bucket start and display value.
func (l *Layout) Tooltip(c bucket.Cell) string {
	start := c.Start
	if l.grid.Location != nil {
		start = start.In(l.grid.Location)
	}

	return start.Format(TooltipLayout) + ": " + legend.FormatValue(c.Value, l.options.Decimals)
}

func (l *Layout) layoutDayTicks(bands bandScale) {
	if bands.n == 0 {
		return
	}

	every := axis.DayTickInterval(l.Plot.W, bands.n, axis.ReferenceLabel, l.options.Measure)

	for _, tick := range axis.DayTicks(l.grid.Days, every) {
		l.DayTicks = append(l.DayTicks, AxisTick{
			X:     l.Plot.X + bands.x(int(tick.Position)) + bands.step/2,
			Y:     l.Plot.Y + l.Plot.H,
			Label: tick.Label,
		})
	}
}

func (l *Layout) layoutHourTicks() {
	step := axis.HourTickStep(l.Plot.H)

	for _, tick := range axis.HourTicks(l.interval, step) {
		l.HourTicks = append(l.HourTicks, AxisTick{
			X:     l.Plot.X,
			Y:     l.Plot.Y + l.y(tick.Position),
			Label: tick.Label,
		})
	}
}

// layoutRegions draws each region that starts inside the plot as a band
// across all days, cut at the plot bottom. Empty and reversed regions are
// skipped.
func (l *Layout) layoutRegions() {
	width := l.interval.Width()
	if width <= 0 {
		return
	}

	perMinute := l.Plot.H / width

	for _, r := range l.options.Regions {
		if r.Duration() <= 0 {
			continue
		}

		top := math.Ceil(l.y(r.Start.Minutes()))
		if top < 0 || top >= l.Plot.H {
			continue
		}

		h := math.Ceil(r.Duration() * perMinute)
		if top+h >= l.Plot.H {
			h = l.Plot.H - top
		}

		l.Regions = append(l.Regions, Band{
			Rect:  Rect{X: l.Plot.X, Y: l.Plot.Y + top, W: l.Plot.W, H: h},
			Color: r.Color,
		})
	}
}

func (l *Layout) layoutLegend(area Rect) {
	lg := &Legend{
		Rect:           area,
		SpectrumHeight: legendHeight - legendAxisHeight,
		Min:            l.options.Min,
		Max:            l.options.Max,
	}

	if l.color != nil {
		lg.Stops = legend.Spectrum(l.color, lg.Min, lg.Max, area.W, l.options.Quality)
	}

	for _, v := range legend.Ticks(lg.Min, lg.Max, legend.DefaultTickCount) {
		x, ok := legend.IndicatorOffset(v, lg.Min, lg.Max, area.W)
		if !ok {
			continue
		}

		lg.Ticks = append(lg.Ticks, AxisTick{
			X:     area.X + x,
			Y:     area.Y + lg.SpectrumHeight,
			Label: legend.FormatValue(v, l.options.Decimals),
		})
	}

	l.Legend = lg
}

// Hover describes the cell under the pointer.
type Hover struct {
	Cell bucket.Cell
	// Time is the middle of the cell's bucket.
	Time  time.Time
	Value float64
	Color string

	// Indicator is the legend x position of Value. IndicatorOK is false
	// without a legend or when the position is undefined.
	Indicator   float64
	IndicatorOK bool
}

// HoverFunc receives hover updates. ok is false when the pointer left all
// cells.
type HoverFunc func(h Hover, ok bool)

// HitTest finds the cell under canvas position (x, y). Overlapping cell
// edges resolve to the cell drawn last.
func (l *Layout) HitTest(x, y float64) (Hover, bool) {
	for i := len(l.Cells) - 1; i >= 0; i-- {
		box := l.Cells[i]
		if !box.Contains(x, y) {
			continue
		}

		h := Hover{
			Cell:  box.Cell,
			Time:  box.Cell.Midpoint(l.grid.BucketWidth()),
			Value: box.Cell.Value,
			Color: box.Color,
		}

		if l.Legend != nil {
			if off, ok := legend.IndicatorOffset(h.Value, l.Legend.Min, l.Legend.Max, l.Legend.W); ok {
				h.Indicator = l.Legend.X + off
				h.IndicatorOK = true
			}
		}

		return h, true
	}

	return Hover{}, false
}

// Hover hit-tests (x, y) and reports the result to fn.
func (l *Layout) Hover(x, y float64, fn HoverFunc) {
	if fn == nil {
		return
	}

	h, ok := l.HitTest(x, y)
	fn(h, ok)
}
