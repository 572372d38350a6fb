// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for calheat runs.
package observability

import (
	"io"
	"log/slog"
)

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is the interactive command mode.
	ModeCLI AppMode = "cli"
	// ModeBatch is an unattended run, typically from cron with a metrics textfile.
	ModeBatch AppMode = "batch"
)

// defaultServiceName is the default OTel service name.
const defaultServiceName = "calheat"

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "dev").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the share of root spans kept, in (0, 1). Other values
	// keep every span.
	SampleRatio float64

	// MetricsTextfile is a path written in Prometheus text format on shutdown.
	// Empty disables the textfile.
	MetricsTextfile string

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		Mode:        ModeCLI,
		LogLevel:    slog.LevelInfo,
	}
}

// exporting reports whether any metric sink is configured.
func (c Config) exporting() bool {
	return c.OTLPEndpoint != "" || c.MetricsTextfile != ""
}
