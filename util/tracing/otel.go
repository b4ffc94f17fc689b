package tracing

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dashbook/dashbook/errors"
	"github.com/dashbook/dashbook/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	once    sync.Once
	initErr error
	tp      *sdktrace.TracerProvider
	mu      sync.Mutex
)

// InitTracer installs the global OTLP/HTTP tracer provider. Only the first call has an effect.
func InitTracer(appSettings *settings.Settings) error {
	once.Do(func() {
		var exporter *otlptrace.Exporter

		exporter, initErr = otlptracehttp.New(context.Background(), exporterOptions(appSettings.Tracing.CollectorURL)...)
		if initErr != nil {
			initErr = errors.NewConfigurationError("failed to create OTLP exporter", initErr)
			return
		}

		var res *resource.Resource

		res, initErr = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceNameKey.String(appSettings.ClientName),
			),
		)
		if initErr != nil {
			initErr = errors.NewConfigurationError("failed to create resource", initErr)
			return
		}

		mu.Lock()
		defer mu.Unlock()

		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(appSettings.Tracing.SampleRate))),
			sdktrace.WithResource(res),
		)

		otel.SetTracerProvider(tp)

		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	})

	return initErr
}

// exporterOptions maps the collector url onto the exporter: plain http is insecure and a
// path other than "/" replaces the default /v1/traces.
func exporterOptions(collectorURL *url.URL) []otlptracehttp.Option {
	if collectorURL == nil {
		return []otlptracehttp.Option{otlptracehttp.WithInsecure()}
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(collectorURL.Host)}

	if collectorURL.Scheme != "https" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	if p := collectorURL.Path; p != "" && p != "/" {
		opts = append(opts, otlptracehttp.WithURLPath(p))
	}

	return opts
}

// ShutdownTracer flushes and shuts down the provider. Subsequent calls are no-ops.
func ShutdownTracer(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if tp == nil {
		return nil
	}

	if err := tp.ForceFlush(ctx); err != nil {
		// an absent collector must not fail shutdown
		if !strings.Contains(err.Error(), "connection refused") {
			return errors.NewProcessingError("failed to flush spans", err)
		}
	}

	if err := tp.Shutdown(ctx); err != nil {
		return errors.NewProcessingError("failed to shutdown tracer", err)
	}

	tp = nil

	return nil
}
