package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ErrNoTextfilePath is returned when a textfile has no destination.
var ErrNoTextfilePath = errors.New("metrics textfile path is empty")

// Textfile collects OTel metrics into a private Prometheus registry and
// writes them in the text exposition format, as expected by the node
// exporter textfile collector.
type Textfile struct {
	path     string
	registry *prometheus.Registry
	exporter *promexporter.Exporter
}

// NewTextfile creates a textfile sink for path. Each call creates an
// independent registry so several sinks never share collectors.
func NewTextfile(path string) (*Textfile, error) {
	if path == "" {
		return nil, ErrNoTextfilePath
	}

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &Textfile{path: path, registry: registry, exporter: exporter}, nil
}

// Reader returns the metric reader to attach to a MeterProvider.
func (tf *Textfile) Reader() sdkmetric.Reader {
	return tf.exporter
}

// Gatherer exposes the registry.
func (tf *Textfile) Gatherer() prometheus.Gatherer {
	return tf.registry
}

// Write gathers the registry and atomically replaces the textfile.
func (tf *Textfile) Write() error {
	err := prometheus.WriteToTextfile(tf.path, tf.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
