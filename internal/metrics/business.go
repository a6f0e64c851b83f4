package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records recipe operations.
type BusinessMetrics interface {
	// RecordOperation counts an operation.
	// Domain example: "recipes". Operation examples: "recipe_create", "recipe_hash".
	// Status is "success" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordInputSize records the size in bytes of a text submitted for hashing.
	RecordInputSize(ctx context.Context, domain, operation string, size int)
}

// inputSizeBuckets spans a short password up to the 64 KiB input limit.
var inputSizeBuckets = []float64{16, 64, 256, 1024, 4096, 16384, 65536}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	inputSizeHisto   metric.Int64Histogram
}

// NewBusinessMetrics creates the recipe instruments on meterProvider, named with the
// namespace prefix.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of recipe operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of recipe operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	inputSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_hash_input_bytes", namespace),
		metric.WithDescription("Size of texts submitted for hashing"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(inputSizeBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create input size histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		inputSizeHisto:   inputSizeHisto,
	}, nil
}

func operationAttributes(domain, operation string, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := append([]attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
	}, extra...)
	return metric.WithAttributes(attrs...)
}

// RecordOperation increments the operation counter.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, operationAttributes(domain, operation, attribute.String("status", status)))
}

// RecordDuration records the operation duration in seconds.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(
		ctx,
		duration.Seconds(),
		operationAttributes(domain, operation, attribute.String("status", status)),
	)
}

// RecordInputSize records the input size in bytes.
func (b *businessMetrics) RecordInputSize(ctx context.Context, domain, operation string, size int) {
	b.inputSizeHisto.Record(ctx, int64(size), operationAttributes(domain, operation))
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
}

// RecordDuration does nothing.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

// RecordInputSize does nothing.
func (n *NoOpBusinessMetrics) RecordInputSize(ctx context.Context, domain, operation string, size int) {
}
