package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *prometheus.Registry
	collector     Collector

	// OTel meters and instruments
	meter           metric.Meter
	stateCountGauge metric.Int64ObservableGauge
	pagesGauge      metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format.
// Each exporter owns its registry, so several can live in one process.
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookshelf-api",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.stateCountGauge, err = oe.meter.Int64ObservableGauge(
		"book.count",
		metric.WithDescription("Number of books by reading state"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeStateCounts),
	)
	if err != nil {
		return fmt.Errorf("creating book count gauge: %w", err)
	}

	oe.pagesGauge, err = oe.meter.Int64ObservableGauge(
		"book.pages",
		metric.WithDescription("Pages across all books, total and read"),
		metric.WithUnit("{pages}"),
		metric.WithInt64Callback(oe.observePages),
	)
	if err != nil {
		return fmt.Errorf("creating pages gauge: %w", err)
	}

	return nil
}

// observeStateCounts is a callback that reports book counts by state
func (oe *OTelExporter) observeStateCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetStateCounts(ctx)
	if err != nil {
		return err
	}

	for state, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("book.state", state),
		))
	}

	return nil
}

// observePages is a callback that reports page totals
func (oe *OTelExporter) observePages(ctx context.Context, observer metric.Int64Observer) error {
	p, err := oe.collector.GetPages(ctx)
	if err != nil {
		return err
	}

	observer.Observe(p.Total, metric.WithAttributes(
		attribute.String("page.kind", "total"),
	))
	observer.Observe(p.Read, metric.WithAttributes(
		attribute.String("page.kind", "read"),
	))

	return nil
}

// ServeHTTP returns the handler serving Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
