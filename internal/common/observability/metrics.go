package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/otlptranslator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Observability bundles the OTel meter and tracer used by the pipeline.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider shutdowner
	meter          otelmetric.Meter
	tracer         trace.Tracer
	itemCounter    otelmetric.Int64Counter
	stageDuration  otelmetric.Float64Histogram
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type Options struct {
	ServiceName string
	// Registerer receives the OTel Prometheus exporter; nil uses the default registerer.
	Registerer     promclient.Registerer
	JaegerEndpoint string
}

// New wires OTel metrics onto a Prometheus registry and, when a Jaeger endpoint is
// configured, a batching trace exporter. Setup failures degrade to no-op instruments.
func New(opts Options) (*Observability, error) {
	o := &Observability{
		meter:  noop.NewMeterProvider().Meter(opts.ServiceName),
		tracer: tracenoop.NewTracerProvider().Tracer(opts.ServiceName),
	}

	// textfile consumers only accept classic underscore names
	exporterOpts := []prometheus.Option{
		prometheus.WithTranslationStrategy(otlptranslator.UnderscoreEscapingWithSuffixes),
	}
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(opts.Registerer))
	}
	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		return o, err
	}

	o.meterProvider = metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(serviceResource(opts.ServiceName)),
	)
	o.meter = o.meterProvider.Meter(opts.ServiceName)

	o.itemCounter, _ = o.meter.Int64Counter(
		"demo_pipeline_items",
		otelmetric.WithDescription("Number of industry demos processed"),
	)
	o.stageDuration, _ = o.meter.Float64Histogram(
		"demo_pipeline_stage_duration",
		otelmetric.WithDescription("Pipeline stage duration"),
		otelmetric.WithUnit("ms"),
	)

	if opts.JaegerEndpoint != "" {
		tp, err := newTracerProvider(opts.ServiceName, opts.JaegerEndpoint)
		if err != nil {
			return o, err
		}
		o.tracerProvider = tp
		o.tracer = tp.Tracer(opts.ServiceName)
	}

	return o, nil
}

func (o *Observability) RecordItemProcessed(ctx context.Context, status string) {
	if o.itemCounter != nil {
		o.itemCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordStageDuration(ctx context.Context, stage string, duration time.Duration) {
	if o.stageDuration != nil {
		o.stageDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
