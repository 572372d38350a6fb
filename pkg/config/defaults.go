// Package config provides YAML-based configuration for calheat.
package config

import "github.com/Sumatoshi-tech/calheat/pkg/colorscale"

// Series defaults.
const (
	DefaultSeriesFormat     = ""
	DefaultSeriesTimeField  = "time"
	DefaultSeriesValueField = "value"
)

// Bucket defaults.
const (
	DefaultBucketTimezone    = "local"
	DefaultBucketFromHour    = 0
	DefaultBucketToHour      = 24
	DefaultBucketCount       = 24
	DefaultBucketAggregation = "mean"
	DefaultBucketWorkers     = 0
)

// Palette defaults.
const (
	DefaultPaletteKind      = "sequential"
	DefaultPaletteScheme    = "Spectral"
	DefaultPaletteInvert    = false
	DefaultPaletteDiverging = false
	DefaultPaletteNullColor = colorscale.DefaultNullColor
	DefaultPaletteSpace     = "rgb"
	DefaultThresholdMode    = "percentage"
	DefaultThresholdBase    = "#73bf69"
)

// Render defaults.
const (
	DefaultRenderFormat    = "svg"
	DefaultRenderWidth     = 800.0
	DefaultRenderHeight    = 400.0
	DefaultRenderBorder    = false
	DefaultRenderTooltip   = true
	DefaultRenderLegend    = true
	DefaultRenderQuality   = "high"
	DefaultRenderIndicator = false
	DefaultRenderTheme     = "light"
	DefaultRenderDecimals  = 2
)

// Logging defaults.
const (
	DefaultLoggingLevel = "info"
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetrySampleRatio = 1.0
	DefaultTelemetryInsecure    = false
	DefaultTelemetryEnvironment = "local"
)
