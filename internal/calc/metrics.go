package calc

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter      metric.Int64Counter
	opsHistogram    metric.Float64Histogram
	errorCounter    metric.Int64Counter
	investmentGauge metric.Float64Gauge
)

// InitMetrics registers custom OTel metric instruments for the calculation
// domain. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calc")

	var err error

	opsCounter, err = meter.Int64Counter("calc.operations.total",
		metric.WithDescription("Total number of calculations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calc.operation.duration",
		metric.WithDescription("Duration of calculations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calc.errors.total",
		metric.WithDescription("Total number of rejected or failed calculations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	investmentGauge, err = meter.Float64Gauge("calc.last_investment",
		metric.WithDescription("Investment amount of the most recent calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating investment gauge: %w", err)
	}

	return nil
}
