package plotpage

import (
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/calheat/pkg/axis"
	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/legend"
	"github.com/Sumatoshi-tech/calheat/pkg/render/layout"
)

const (
	// DefaultColorSamples is the number of colors handed to the visual map.
	DefaultColorSamples = 32

	// nominalWidth sizes day labels for a chart of relative width.
	nominalWidth    = 1000.0
	nominalHeight   = 480.0
	nominalFontSize = 12.0

	cellBorderWidth = 2
	minutesPerHour  = 60
)

// HeatmapOptions controls the heatmap chart.
type HeatmapOptions struct {
	Title    string
	Subtitle string

	// Min and Max bound the visual map.
	Min float64
	Max float64

	// ColorSamples is the number of colors sampled from the scale.
	ColorSamples int

	CellBorder bool
	Tooltip    bool
	Decimals   int
}

// BuildHeatMap constructs a day by bucket heatmap of g. Days run left to
// right and the first bucket of the day is at the top. The visual map
// approximates fn by sampling it across [Min, Max].
func BuildHeatMap(cOpts *ChartOpts, style Style, g *bucket.Grid, fn colorscale.Func, hOpts HeatmapOptions) *charts.HeatMap {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	samples := hOpts.ColorSamples
	if samples < 2 {
		samples = DefaultColorSamples
	}

	dayLabels := make([]string, len(g.Days))
	for i, d := range g.Days {
		dayLabels[i] = d.Format(axis.DayLabelLayout)
	}

	every := axis.DayTickInterval(nominalWidth, len(g.Days), axis.ReferenceLabel, axis.ApproxMeasure(nominalFontSize))
	hourEvery := labelEvery(g, axis.HourTickStep(nominalHeight))

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(style.Width, style.Height)),
		charts.WithTitleOpts(cOpts.Title(hOpts.Title, hOpts.Subtitle)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(hOpts.Tooltip)}),
		charts.WithXAxisOpts(cOpts.CategoryXAxis(dayLabels, strconv.Itoa(every-1))),
		charts.WithYAxisOpts(cOpts.CategoryYAxis(bucketLabels(g), strconv.Itoa(hourEvery-1))),
		charts.WithVisualMapOpts(cOpts.VisualMap(hOpts.Min, hOpts.Max, colorscale.Sample(fn, hOpts.Min, hOpts.Max, samples))),
		charts.WithGridOpts(cOpts.Grid()),
	)

	var seriesOpts []charts.SeriesOpts
	if hOpts.CellBorder {
		seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{
			BorderColor: cOpts.CellBorderColor(),
			BorderWidth: cellBorderWidth,
		}))
	}

	hm.AddSeries("value", heatMapData(g, hOpts.Decimals), seriesOpts...)

	return hm
}

// labelEvery converts an hour spacing into a bucket label spacing.
func labelEvery(g *bucket.Grid, hours int) int {
	width := g.Interval.Width()
	if width <= 0 {
		return 1
	}

	perHour := float64(max(g.BucketCount, 1)) * minutesPerHour / width

	return max(int(math.Round(float64(hours)*perHour)), 1)
}

// bucketLabels returns HH:MM labels of bucket starts, last bucket first so
// that the category axis reads top down.
func bucketLabels(g *bucket.Grid) []string {
	n := max(g.BucketCount, 1)
	width := g.BucketWidth()
	midnight := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	labels := make([]string, n)
	for i := range n {
		minute := g.Interval.StartMinute + float64(i)*width
		labels[n-1-i] = midnight.Add(time.Duration(minute * float64(time.Minute))).Format(axis.HourLabelLayout)
	}

	return labels
}

func heatMapData(g *bucket.Grid, decimals int) []opts.HeatMapData {
	n := max(g.BucketCount, 1)
	data := make([]opts.HeatMapData, 0, len(g.Cells))

	for _, c := range g.Cells {
		col := g.DayIndex(c.Day)
		if col < 0 {
			continue
		}

		start := c.Start
		if g.Location != nil {
			start = start.In(g.Location)
		}

		data = append(data, opts.HeatMapData{
			Name:  start.Format(layout.TooltipLayout) + " " + legend.FormatValue(c.Value, decimals),
			Value: []any{col, n - 1 - c.Index, c.Value},
		})
	}

	return data
}
