package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "netsync"

// TracerConfig configures connection tracing.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "netsync").
	TracerName string

	// IncludePlayerName adds the player name to connect spans.
	// Disabled by default.
	IncludePlayerName bool

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider
}

// TracerOption configures a Tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithIncludePlayerName enables the player name attribute.
func WithIncludePlayerName(include bool) TracerOption {
	return func(c *TracerConfig) {
		c.IncludePlayerName = include
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = tp
	}
}

// Tracer starts spans around connection setup. Per-frame work is never
// traced.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// passed. Configure it in main() before connecting:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
type Tracer struct {
	config TracerConfig
	tracer trace.Tracer
}

// NewTracer creates a Tracer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{config: config, tracer: provider.Tracer(config.TracerName)}
}

// ConnectAttrs describe a connection attempt.
type ConnectAttrs struct {
	Transport    string
	Addr         string
	ConnectionID string
	PlayerName   string
	Version      uint16
}

// StartConnect starts a client span covering dial and handshake. A nil
// Tracer returns ctx and a no-op span.
func (t *Tracer) StartConnect(ctx context.Context, a ConnectAttrs) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	attrs := []attribute.KeyValue{
		attribute.String("netsync.transport", a.Transport),
		attribute.String("netsync.server_addr", a.Addr),
		attribute.String("netsync.connection_id", a.ConnectionID),
		attribute.Int("netsync.protocol_version", int(a.Version)),
	}
	if t.config.IncludePlayerName && a.PlayerName != "" {
		attrs = append(attrs, attribute.String("netsync.player_name", a.PlayerName))
	}
	return t.tracer.Start(ctx, "netsync.connect",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// StartSpan starts a child span named "netsync.<name>".
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, "netsync."+name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, sets its status and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
