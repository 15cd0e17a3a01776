package observability

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// keptPrefixes name the attribute namespaces errshape itself writes.
var keptPrefixes = []string{
	"errshape.",
	"error.",
	"document.",
	"suite.",
	"outcome.",
}

// textPrefixes hold raised exception text or caller data and never leave
// the process.
var textPrefixes = []string{
	"user.",
	"raised.",
}

var textKeys = map[attribute.Key]bool{
	semconv.ExceptionMessageKey: true,
	"document.body":             true,
	"outcome.diagnostic":        true,
}

// eventKeys are kept on span events. RecordError writes exception.message
// next to these; the message is dropped.
var eventKeys = map[attribute.Key]bool{
	semconv.ExceptionTypeKey:    true,
	semconv.ExceptionEscapedKey: true,
}

// attributeFilter is a SpanProcessor that hands its delegate a scrubbed view
// of every finished span: unknown and text-bearing attributes are removed
// from the span and its events, and error status descriptions are cleared.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
	logger   *slog.Logger
}

// NewAttributeFilter returns a SpanProcessor that scrubs spans before they
// reach delegate. When logger is non-nil, the dropped keys of each span are
// logged at debug level.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, logger: logger}
}

// OnStart delegates to the wrapped processor.
func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

// OnEnd scrubs s, then delegates to the wrapped processor.
func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	attrs, dropped := keepAttributes(s.Attributes(), spanKeyKept)

	events := make([]sdktrace.Event, 0, len(s.Events()))

	for _, ev := range s.Events() {
		var evDropped []string

		ev.Attributes, evDropped = keepAttributes(ev.Attributes, eventKeyKept)
		dropped = append(dropped, evDropped...)
		events = append(events, ev)
	}

	status := s.Status()
	if status.Code == codes.Error {
		status.Description = ""
	}

	if f.logger != nil && len(dropped) > 0 {
		slices.Sort(dropped)
		f.logger.Debug("span attributes dropped", "span", s.Name(), "keys", slices.Compact(dropped))
	}

	f.delegate.OnEnd(&scrubbedSpan{ReadOnlySpan: s, attrs: attrs, events: events, status: status})
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

func keepAttributes(attrs []attribute.KeyValue, kept func(attribute.Key) bool) ([]attribute.KeyValue, []string) {
	out := make([]attribute.KeyValue, 0, len(attrs))

	var dropped []string

	for _, kv := range attrs {
		if kept(kv.Key) {
			out = append(out, kv)
		} else {
			dropped = append(dropped, string(kv.Key))
		}
	}

	return out, dropped
}

func spanKeyKept(key attribute.Key) bool {
	if textKeys[key] || hasAnyPrefix(string(key), textPrefixes) {
		return false
	}

	return key == "error" || hasAnyPrefix(string(key), keptPrefixes)
}

func eventKeyKept(key attribute.Key) bool {
	return eventKeys[key] || spanKeyKept(key)
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

// scrubbedSpan is a ReadOnlySpan with its attributes, events and status
// replaced by their scrubbed forms.
type scrubbedSpan struct {
	sdktrace.ReadOnlySpan

	attrs  []attribute.KeyValue
	events []sdktrace.Event
	status sdktrace.Status
}

// Attributes returns the kept span attributes.
func (s *scrubbedSpan) Attributes() []attribute.KeyValue {
	return s.attrs
}

// Events returns the span events with their kept attributes.
func (s *scrubbedSpan) Events() []sdktrace.Event {
	return s.events
}

// Status returns the span status without an error description.
func (s *scrubbedSpan) Status() sdktrace.Status {
	return s.status
}
