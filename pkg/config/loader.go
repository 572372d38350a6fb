package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".calheat"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for calheat settings.
const envPrefix = "CALHEAT"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
// The result is validated but not normalized; callers log the warnings
// returned by Normalize.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the built-in defaults, ignoring files and env vars.
func Default() *Config {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	var cfg Config

	_ = viperCfg.Unmarshal(&cfg)

	return &cfg
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("series.format", DefaultSeriesFormat)
	viperCfg.SetDefault("series.time_field", DefaultSeriesTimeField)
	viperCfg.SetDefault("series.value_field", DefaultSeriesValueField)

	viperCfg.SetDefault("bucket.timezone", DefaultBucketTimezone)
	viperCfg.SetDefault("bucket.from_hour", DefaultBucketFromHour)
	viperCfg.SetDefault("bucket.to_hour", DefaultBucketToHour)
	viperCfg.SetDefault("bucket.count", DefaultBucketCount)
	viperCfg.SetDefault("bucket.aggregation", DefaultBucketAggregation)
	viperCfg.SetDefault("bucket.range_from", "")
	viperCfg.SetDefault("bucket.range_to", "")
	viperCfg.SetDefault("bucket.workers", DefaultBucketWorkers)

	viperCfg.SetDefault("palette.kind", DefaultPaletteKind)
	viperCfg.SetDefault("palette.scheme", DefaultPaletteScheme)
	viperCfg.SetDefault("palette.invert", DefaultPaletteInvert)
	viperCfg.SetDefault("palette.diverging", DefaultPaletteDiverging)
	viperCfg.SetDefault("palette.null_color", DefaultPaletteNullColor)
	viperCfg.SetDefault("palette.color_space", DefaultPaletteSpace)
	viperCfg.SetDefault("palette.thresholds.mode", DefaultThresholdMode)
	viperCfg.SetDefault("palette.thresholds.base", DefaultThresholdBase)

	viperCfg.SetDefault("render.format", DefaultRenderFormat)
	viperCfg.SetDefault("render.output", "")
	viperCfg.SetDefault("render.title", "")
	viperCfg.SetDefault("render.width", DefaultRenderWidth)
	viperCfg.SetDefault("render.height", DefaultRenderHeight)
	viperCfg.SetDefault("render.cell_border", DefaultRenderBorder)
	viperCfg.SetDefault("render.tooltip", DefaultRenderTooltip)
	viperCfg.SetDefault("render.legend", DefaultRenderLegend)
	viperCfg.SetDefault("render.legend_quality", DefaultRenderQuality)
	viperCfg.SetDefault("render.value_indicator", DefaultRenderIndicator)
	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.decimals", DefaultRenderDecimals)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.json", DefaultLoggingJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultTelemetryInsecure)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
	viperCfg.SetDefault("telemetry.metrics_textfile", "")
	viperCfg.SetDefault("telemetry.environment", DefaultTelemetryEnvironment)
}
