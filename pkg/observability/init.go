// Package observability sets up OpenTelemetry tracing for tabula and hands
// out the tracer the parser opens its spans with.
package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/tabula/pkg/config"
)

// InstrumentationName names the tracer used by tabula's own packages.
const InstrumentationName = "github.com/ajitpratap0/tabula"

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	SampleRate     float64
	Pretty         bool
	// Writer receives the exported spans; nil means stdout
	Writer io.Writer
}

// FromConfig converts the tracing section of the application config.
func FromConfig(cfg config.TracingConfig, version string) TracingConfig {
	return TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		SampleRate:     cfg.SampleRate,
		Pretty:         cfg.Pretty,
	}
}

// InitTracing installs a global tracer provider that writes finished
// spans as JSON through the stdout exporter. Calling it again replaces the
// previous provider after shutting it down.
func InitTracing(ctx context.Context, cfg TracingConfig) error {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.Pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	// Configure sampling
	var sampler sdktrace.Sampler
	if cfg.SampleRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else if cfg.SampleRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter),
	)

	mu.Lock()
	prev := provider
	provider = tp
	mu.Unlock()

	otel.SetTracerProvider(tp)

	if prev != nil {
		return prev.Shutdown(ctx)
	}
	return nil
}

// Tracer returns tabula's tracer from the global provider. Before
// InitTracing it is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and stops the provider installed by
// InitTracing. It is a no-op when tracing was never initialised.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp := provider
	provider = nil
	mu.Unlock()

	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer: %w", err)
	}
	return nil
}
