package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics owns the meter provider and the instruments recorded by the
// prediction path and the HTTP transport. A nil *Metrics is a valid no-op.
type Metrics struct {
	provider         *sdkmetric.MeterProvider
	handler          http.Handler
	predictions      metric.Int64Counter
	predictionErrors metric.Int64Counter
	requestDuration  metric.Float64Histogram
}

// New builds a Prometheus-backed meter provider on a private registry.
func New(serviceName string) (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	predictions, err := meter.Int64Counter("predictions",
		metric.WithDescription("Successful burnout risk predictions by risk level"))
	if err != nil {
		return nil, fmt.Errorf("create predictions counter: %w", err)
	}

	predictionErrors, err := meter.Int64Counter("prediction_errors",
		metric.WithDescription("Prediction requests rejected with a validation error"))
	if err != nil {
		return nil, fmt.Errorf("create prediction errors counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("http_request_duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create request duration histogram: %w", err)
	}

	return &Metrics{
		provider:         provider,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		predictions:      predictions,
		predictionErrors: predictionErrors,
		requestDuration:  requestDuration,
	}, nil
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

func (m *Metrics) RecordPrediction(ctx context.Context, riskLevel string) {
	if m == nil {
		return
	}
	m.predictions.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", riskLevel)))
}

func (m *Metrics) RecordPredictionError(ctx context.Context) {
	if m == nil {
		return
	}
	m.predictionErrors.Add(ctx, 1)
}

func (m *Metrics) ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
