package chat

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	requestCounter  metric.Int64Counter
	requestDuration metric.Float64Histogram
	errorCounter    metric.Int64Counter
)

// InitMetrics registers custom OTel metric instruments for the chat relay.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("chat")

	var err error

	requestCounter, err = meter.Int64Counter("chat.requests.total",
		metric.WithDescription("Total number of chat relay requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	requestDuration, err = meter.Float64Histogram("chat.request.duration",
		metric.WithDescription("Duration of upstream completion calls in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating request histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("chat.errors.total",
		metric.WithDescription("Total number of chat relay failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
