package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// BuildResourceForTest exposes buildResource for testing.
func BuildResourceForTest(cfg Config) (*resource.Resource, error) {
	return buildResource(cfg)
}

// SampledForTest creates a span using the sampler resolved from cfg and
// reports whether it was sampled.
func SampledForTest(cfg Config) bool {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(selectSampler(cfg)),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "check")
	span.End()

	// Check spans before Shutdown, which clears the exporter.
	spans := exporter.GetSpans()

	shutdownErr := tp.Shutdown(context.Background())
	if shutdownErr != nil {
		return false
	}

	return len(spans) > 0
}

// FilteredAttributesForTest records one span with attrs through the attribute filter
// and returns the exported attributes.
func FilteredAttributesForTest(attrs map[string]string) map[string]string {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewAttributeFilter(sdktrace.NewSimpleSpanProcessor(exporter))),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "check")

	for k, v := range attrs {
		span.SetAttributes(attribute.String(k, v))
	}

	span.End()

	out := make(map[string]string)

	for _, s := range exporter.GetSpans() {
		for _, kv := range s.Attributes {
			out[string(kv.Key)] = kv.Value.Emit()
		}
	}

	_ = tp.Shutdown(context.Background())

	return out
}
