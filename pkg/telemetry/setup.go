package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ScopeName is the instrumentation scope of the server's meter and tracer.
const ScopeName = "github.com/germanamz/garmin-mcp"

// Providers holds the installed tracer and meter providers.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if err := p.Tracer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.Meter.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("telemetry: shutdown: %v", errs)
	}
	return nil
}

// Setup installs SDK tracer and meter providers as the global providers.
// Spans and tool metrics are exported over OTLP/HTTP when endpoint is set
// (either host:port or a full URL); otherwise they are recorded in-process
// only.
func Setup(ctx context.Context, endpoint string) (*Providers, error) {
	var (
		traceOpts  []sdktrace.TracerProviderOption
		metricOpts []sdkmetric.Option
	)

	if endpoint != "" {
		var (
			traceExpOpts  []otlptracehttp.Option
			metricExpOpts []otlpmetrichttp.Option
		)
		if strings.Contains(endpoint, "://") {
			traceExpOpts = append(traceExpOpts, otlptracehttp.WithEndpointURL(endpoint))
			metricExpOpts = append(metricExpOpts, otlpmetrichttp.WithEndpointURL(endpoint))
		} else {
			traceExpOpts = append(traceExpOpts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
			metricExpOpts = append(metricExpOpts, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure())
		}

		traceExp, err := otlptracehttp.New(ctx, traceExpOpts...)
		if err != nil {
			return nil, fmt.Errorf("telemetry: otlp trace exporter: %w", err)
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExp))

		metricExp, err := otlpmetrichttp.New(ctx, metricExpOpts...)
		if err != nil {
			return nil, fmt.Errorf("telemetry: otlp metric exporter: %w", err)
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)))
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(traceOpts...),
		Meter:  sdkmetric.NewMeterProvider(metricOpts...),
	}
	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)

	return p, nil
}
