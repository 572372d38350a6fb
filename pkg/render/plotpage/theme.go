package plotpage

import "strings"

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme resolves a theme name, defaulting to ThemeLight.
func ParseTheme(name string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(name))) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	// Base colors.
	Background string
	Surface    string
	Border     string

	// Text colors.
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	Accent string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// CellBorder separates heatmap cells and matches the page surface.
	CellBorder string

	// ECharts theme name.
	EChartsTheme string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	switch theme {
	case ThemeDark:
		return darkTheme
	case ThemeLight:
		return lightTheme
	default:
		return lightTheme
	}
}

var lightTheme = ThemeConfig{
	Background: "#f4f5f5",
	Surface:    "#ffffff",
	Border:     "#e4e7e7",

	TextPrimary:   "#24292e",
	TextSecondary: "#464c54",
	TextMuted:     "#6e7680",

	Accent: "#3871dc",

	ChartBackground: "transparent",
	ChartGrid:       "#e4e7e7",
	ChartAxis:       "#ccccdc",
	ChartText:       "#464c54",
	ChartTextMuted:  "#6e7680",

	CellBorder: "#ffffff",

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	Background: "#111217",
	Surface:    "#181b1f",
	Border:     "#2c3235",

	TextPrimary:   "#ccccdc",
	TextSecondary: "#b6b8c3",
	TextMuted:     "#8e8e8e",

	Accent: "#6e9fff",

	ChartBackground: "transparent",
	ChartGrid:       "#2c3235",
	ChartAxis:       "#464c54",
	ChartText:       "#ccccdc",
	ChartTextMuted:  "#8e8e8e",

	CellBorder: "#181b1f",

	EChartsTheme: "",
}
