package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	keypressCounter   metric.Int64Counter
	keypressHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
	sessionsGauge     metric.Int64UpDownCounter
)

// InitMetrics registers custom OTel metric instruments for the calculator
// domain. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	keypressCounter, err = meter.Int64Counter("calculator.keypresses.total",
		metric.WithDescription("Total number of keypress commands dispatched"),
		metric.WithUnit("{keypress}"),
	)
	if err != nil {
		return fmt.Errorf("creating keypress counter: %w", err)
	}

	keypressHistogram, err = meter.Float64Histogram("calculator.keypress.duration",
		metric.WithDescription("Duration of keypress dispatch in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating keypress histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of latching calculator errors and rejected requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	sessionsGauge, err = meter.Int64UpDownCounter("calculator.sessions.active",
		metric.WithDescription("Number of live calculator sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating sessions gauge: %w", err)
	}

	return nil
}
