// Package svg renders a laid out heatmap as a standalone SVG document.
package svg

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/calheat/pkg/legend"
	"github.com/Sumatoshi-tech/calheat/pkg/render/layout"
)

// ErrNoLayout is returned when there is nothing to draw.
var ErrNoLayout = errors.New("no layout")

// Options controls presentation details that do not affect geometry.
type Options struct {
	Title      string
	FontSize   float64
	FontFamily string

	// Background fills the canvas; empty leaves it transparent.
	Background string
	// TextColor is used for labels and the value indicator.
	TextColor string
	// AxisColor strokes tick marks.
	AxisColor string

	// CellBorder outlines cells in BorderColor.
	CellBorder  bool
	BorderColor string

	// Tooltip attaches a <title> with the bucket start and value to each cell.
	Tooltip bool

	// Indicator marks a value on the legend spectrum when non-nil.
	Indicator *float64
}

// DefaultOptions returns a light theme with tooltips enabled.
func DefaultOptions() Options {
	return Options{
		FontSize:    layout.DefaultFontSize,
		FontFamily:  "sans-serif",
		TextColor:   "#464c54",
		AxisColor:   "#ccccdc",
		BorderColor: "#ffffff",
		Tooltip:     true,
	}
}

const (
	cellBorderWidth = 4
	tickLength      = 6
	labelGap        = 3
	indicatorHeight = 7
	gradientID      = "calheat-legend-gradient"
)

// Render returns the SVG document for l.
func Render(l *layout.Layout, opts Options) (string, error) {
	var sb strings.Builder

	err := Write(&sb, l, opts)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Write encodes l as SVG to w.
func Write(w io.Writer, l *layout.Layout, opts Options) error {
	if l == nil {
		return ErrNoLayout
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))
	fmt.Fprintf(&sb, `  <style>.label{font-family:%s;font-size:%spx;fill:%s}.tick{stroke:%s;stroke-width:2}</style>`+"\n",
		html.EscapeString(opts.FontFamily), num(opts.FontSize), opts.TextColor, opts.AxisColor)

	if opts.Title != "" {
		fmt.Fprintf(&sb, "  <title>%s</title>\n", html.EscapeString(opts.Title))
	}

	if opts.Background != "" {
		fmt.Fprintf(&sb, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background)
	}

	writeCells(&sb, l, opts)
	writeRegions(&sb, l)
	writeDayAxis(&sb, l)
	writeHourAxis(&sb, l)

	if l.Legend != nil {
		writeLegend(&sb, l.Legend, opts)
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	return nil
}

func writeCells(sb *strings.Builder, l *layout.Layout, opts Options) {
	sb.WriteString(`  <g class="cells" shape-rendering="crispEdges">` + "\n")

	stroke := ""
	if opts.CellBorder {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%d"`, opts.BorderColor, cellBorderWidth)
	}

	for _, c := range l.Cells {
		rect := fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s`,
			num(c.X), num(c.Y), num(c.W), num(c.H), c.Color, stroke)

		if opts.Tooltip {
			fmt.Fprintf(sb, "    %s><title>%s</title></rect>\n", rect, html.EscapeString(c.Tooltip))
		} else {
			fmt.Fprintf(sb, "    %s/>\n", rect)
		}
	}

	sb.WriteString("  </g>\n")
}

func writeRegions(sb *strings.Builder, l *layout.Layout) {
	if len(l.Regions) == 0 {
		return
	}

	sb.WriteString(`  <g class="regions" pointer-events="none">` + "\n")

	for _, r := range l.Regions {
		fmt.Fprintf(sb, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			num(r.X), num(r.Y), num(r.W), num(r.H), r.Color, r.Color)
	}

	sb.WriteString("  </g>\n")
}

func writeDayAxis(sb *strings.Builder, l *layout.Layout) {
	for _, t := range l.DayTicks {
		fmt.Fprintf(sb, `  <line class="tick" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(t.X), num(t.Y), num(t.X), num(t.Y+tickLength))
		fmt.Fprintf(sb, `  <text class="label" x="%s" y="%s" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
			num(t.X), num(t.Y+tickLength+labelGap), html.EscapeString(t.Label))
	}
}

func writeHourAxis(sb *strings.Builder, l *layout.Layout) {
	for _, t := range l.HourTicks {
		fmt.Fprintf(sb, `  <line class="tick" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(t.X-tickLength), num(t.Y), num(t.X), num(t.Y))
		fmt.Fprintf(sb, `  <text class="label" x="%s" y="%s" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			num(t.X-tickLength-labelGap), num(t.Y), html.EscapeString(t.Label))
	}
}

func writeLegend(sb *strings.Builder, lg *layout.Legend, opts Options) {
	fmt.Fprintf(sb, `  <g class="legend" transform="translate(%s, %s)">`+"\n", num(lg.X), num(lg.Y))

	if len(lg.Stops) > 0 {
		fmt.Fprintf(sb, `    <defs><linearGradient id="%s" x1="0" y1="0" x2="1" y2="0">`+"\n", gradientID)

		for _, s := range lg.Stops {
			fmt.Fprintf(sb, `      <stop offset="%s" stop-color="%s"/>`+"\n", num(s.Offset), s.Color)
		}

		sb.WriteString("    </linearGradient></defs>\n")
		fmt.Fprintf(sb, `    <rect x="0" y="0" width="%s" height="%s" fill="url(#%s)"/>`+"\n",
			num(lg.W), num(lg.SpectrumHeight), gradientID)
	}

	for _, t := range lg.Ticks {
		x := t.X - lg.X
		fmt.Fprintf(sb, `    <line class="tick" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(x), num(lg.SpectrumHeight), num(x), num(lg.SpectrumHeight+tickLength))
		fmt.Fprintf(sb, `    <text class="label" x="%s" y="%s" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
			num(x), num(lg.SpectrumHeight+tickLength+labelGap), html.EscapeString(t.Label))
	}

	if opts.Indicator != nil {
		writeIndicator(sb, lg, *opts.Indicator, opts.TextColor)
	}

	sb.WriteString("  </g>\n")
}

func writeIndicator(sb *strings.Builder, lg *layout.Legend, value float64, color string) {
	x, ok := legend.IndicatorOffset(value, lg.Min, lg.Max, lg.W)
	if !ok {
		return
	}

	fmt.Fprintf(sb, `    <g class="indicator" transform="translate(%s, %d)"><polygon points="-5,0 5,0 0,7" fill="%s"/></g>`+"\n",
		num(x), -indicatorHeight, color)
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
