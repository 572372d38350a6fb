package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOpts provides themed chart options based on the current theme.
type ChartOpts struct {
	theme ThemeConfig
}

// NewChartOpts creates a new ChartOpts with the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme)}
}

// DefaultChartOpts returns chart options for the default light theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeLight)
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.theme.ChartBackground,
		Theme:           c.theme.EChartsTheme,
	}
}

// Title returns title options with themed text colors.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.theme.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// CategoryXAxis returns a category x-axis showing every interval-th label.
func (c *ChartOpts) CategoryXAxis(labels []string, interval string) opts.XAxis {
	return opts.XAxis{
		Type:      "category",
		Data:      labels,
		SplitArea: &opts.SplitArea{Show: opts.Bool(false)},
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted, Interval: interval},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// CategoryYAxis returns a category y-axis showing every interval-th label.
func (c *ChartOpts) CategoryYAxis(labels []string, interval string) opts.YAxis {
	return opts.YAxis{
		Type:      "category",
		Data:      labels,
		SplitArea: &opts.SplitArea{Show: opts.Bool(false)},
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted, Interval: interval},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// Grid returns grid options leaving room for the visual map below.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          "40",
		Bottom:       "90",
		Left:         "5%",
		Right:        "5%",
		ContainLabel: opts.Bool(true),
	}
}

// Tooltip returns tooltip options.
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// VisualMap returns a horizontal continuous color legend over [lo, hi].
func (c *ChartOpts) VisualMap(lo, hi float64, colors []string) opts.VisualMap {
	return opts.VisualMap{
		Calculable: opts.Bool(true),
		Min:        float32(lo),
		Max:        float32(hi),
		InRange:    &opts.VisualMapInRange{Color: colors},
		Orient:     "horizontal",
		Left:       "center",
		Bottom:     "2%",
		TextStyle:  &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// TextColor returns the primary chart text color.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}

// CellBorderColor returns the color that separates heatmap cells.
func (c *ChartOpts) CellBorderColor() string {
	return c.theme.CellBorder
}
