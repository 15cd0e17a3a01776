// Package observability wires structured logging and OpenTelemetry tracing
// for the errshape CLI.
package observability

import (
	"io"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultServiceName        = "errshape"
	defaultShutdownTimeoutSec = 5
)

// Config holds the observability settings.
type Config struct {
	// ServiceName is attached to every span resource and log record.
	ServiceName string

	// ServiceVersion is optional.
	ServiceVersion string

	// Environment is optional, e.g. "ci".
	Environment string

	// LogLevel is the minimum level emitted by the logger.
	LogLevel slog.Level

	// LogJSON selects the JSON handler instead of the text handler.
	LogJSON bool

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer

	// SampleRatio is used when OTEL_TRACES_SAMPLER is unset and greater than zero.
	SampleRatio float64

	// OTLPEndpoint is the gRPC collector address (host:port). Empty disables
	// export; spans then only carry ids for log correlation.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the collector connection.
	OTLPInsecure bool

	// OTLPHeaders are sent with every export request.
	OTLPHeaders map[string]string

	// SpanProcessors receive finished spans after attribute filtering, next
	// to the OTLP exporter when one is configured.
	SpanProcessors []sdktrace.SpanProcessor

	// ShutdownTimeoutSec bounds Shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with errshape defaults.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelWarn,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
