package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	predictionCounter  otelmetric.Int64Counter
	predictionDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	predictionCounter, _ := meter.Int64Counter(
		"predictions.processed",
		otelmetric.WithDescription("Number of prediction requests processed"),
	)

	predictionDuration, _ := meter.Float64Histogram(
		"predictions.duration",
		otelmetric.WithDescription("Prediction request duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		predictionCounter:  predictionCounter,
		predictionDuration: predictionDuration,
	}
}

func (o *Observability) RecordPrediction(ctx context.Context, status string) {
	if o.predictionCounter != nil {
		o.predictionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordPredictionDuration(ctx context.Context, duration time.Duration, status string) {
	if o.predictionDuration != nil {
		o.predictionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
