package observability

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// exportedNamespaces are the attribute key prefixes that leave the process.
var exportedNamespaces = []string{
	"calheat.",
	"error.",
	"series.",
	"bucket.",
	"palette.",
	"render.",
	"grid.",
}

// pathKeys hold local file paths. Only their base name is exported.
var pathKeys = map[attribute.Key]bool{
	"series.path":   true,
	"render.output": true,
	"config.path":   true,
}

// attributeFilter is a SpanProcessor that reduces span attributes to the
// calheat namespaces before forwarding to a delegate processor.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
}

// NewAttributeFilter returns a SpanProcessor that exports only attributes
// under the calheat, series, bucket, palette, render, grid and error
// namespaces, plus a bare "error" key. Path attributes keep their base name.
func NewAttributeFilter(delegate sdktrace.SpanProcessor) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate}
}

// OnStart delegates to the wrapped processor.
func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

// OnEnd forwards a filtered view of s.
func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s})
}

// Shutdown delegates to the wrapped processor.
func (f *attributeFilter) Shutdown(ctx context.Context) error {
	err := f.delegate.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

// ForceFlush delegates to the wrapped processor.
func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	err := f.delegate.ForceFlush(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

// exportAttribute returns the exported form of kv, or false to drop it.
func exportAttribute(kv attribute.KeyValue) (attribute.KeyValue, bool) {
	if pathKeys[kv.Key] {
		if kv.Value.Type() != attribute.STRING {
			return kv, false
		}

		return kv.Key.String(filepath.Base(kv.Value.AsString())), true
	}

	key := string(kv.Key)
	if key == "error" {
		return kv, true
	}

	for _, ns := range exportedNamespaces {
		if strings.HasPrefix(key, ns) {
			return kv, true
		}
	}

	return kv, false
}

// filteredSpan wraps a ReadOnlySpan and rewrites its attributes.
type filteredSpan struct {
	sdktrace.ReadOnlySpan
}

// Attributes returns the exported attributes.
func (s *filteredSpan) Attributes() []attribute.KeyValue {
	orig := s.ReadOnlySpan.Attributes()
	out := make([]attribute.KeyValue, 0, len(orig))

	for _, kv := range orig {
		if exported, ok := exportAttribute(kv); ok {
			out = append(out, exported)
		}
	}

	return out
}
