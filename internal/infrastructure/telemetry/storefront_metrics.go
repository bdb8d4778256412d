package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
)

// StorefrontMetrics counts sessions and orders. It subscribes to the event
// bus, so instruments move only when the domain raised the event.
type StorefrontMetrics struct {
	sessionsStarted   metric.Int64Counter
	ordersSubmitted   metric.Int64Counter
	ordersPlaced      metric.Int64Counter
	ordersFailed      metric.Int64Counter
	orderValue        metric.Float64Histogram
	placementDuration metric.Float64Histogram
}

// NewStorefrontMetrics creates the instruments on meter
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	m := &StorefrontMetrics{}
	var err error

	if m.sessionsStarted, err = meter.Int64Counter("storefront_sessions_started_total",
		metric.WithDescription("Browsing sessions started")); err != nil {
		return nil, instrumentError("storefront_sessions_started_total", err)
	}
	if m.ordersSubmitted, err = meter.Int64Counter("storefront_orders_submitted_total",
		metric.WithDescription("Checkout submissions accepted for placement")); err != nil {
		return nil, instrumentError("storefront_orders_submitted_total", err)
	}
	if m.ordersPlaced, err = meter.Int64Counter("storefront_orders_placed_total",
		metric.WithDescription("Orders placed")); err != nil {
		return nil, instrumentError("storefront_orders_placed_total", err)
	}
	if m.ordersFailed, err = meter.Int64Counter("storefront_orders_failed_total",
		metric.WithDescription("Order placements that failed")); err != nil {
		return nil, instrumentError("storefront_orders_failed_total", err)
	}
	if m.orderValue, err = meter.Float64Histogram("storefront_order_value",
		metric.WithDescription("Order total including shipping"),
		metric.WithUnit("DZD"),
		metric.WithExplicitBucketBoundaries(50, 100, 200, 400, 800, 1600, 3200)); err != nil {
		return nil, instrumentError("storefront_order_value", err)
	}
	if m.placementDuration, err = meter.Float64Histogram("storefront_order_placement_duration_seconds",
		metric.WithDescription("Time spent placing an order"),
		metric.WithUnit("s")); err != nil {
		return nil, instrumentError("storefront_order_placement_duration_seconds", err)
	}
	return m, nil
}

func instrumentError(name string, err error) error {
	return fmt.Errorf("create instrument %s: %w", name, err)
}

// RecordPlacement records how long a placement attempt took
func (m *StorefrontMetrics) RecordPlacement(ctx context.Context, d time.Duration, ok bool) {
	outcome := "placed"
	if !ok {
		outcome = "failed"
	}
	m.placementDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *StorefrontMetrics) EventTypes() []string {
	return []string{
		session.EventTypeSessionStarted,
		session.EventTypeOrderSubmitted,
		session.EventTypeOrderPlaced,
		session.EventTypeOrderSubmissionFailed,
	}
}

func (m *StorefrontMetrics) Handle(ctx context.Context, ev shared.DomainEvent) error {
	switch e := ev.(type) {
	case *session.SessionStartedEvent:
		m.sessionsStarted.Add(ctx, 1)
	case *session.OrderSubmittedEvent:
		m.ordersSubmitted.Add(ctx, 1)
	case *session.OrderPlacedEvent:
		attrs := metric.WithAttributes(
			attribute.String("shipping_method", e.ShippingMethod),
			attribute.String("region", e.Region),
		)
		m.ordersPlaced.Add(ctx, 1, attrs)
		m.orderValue.Record(ctx, e.Total.InexactFloat64(), attrs)
	case *session.OrderSubmissionFailedEvent:
		m.ordersFailed.Add(ctx, 1)
	}
	return nil
}

var _ shared.EventHandler = (*StorefrontMetrics)(nil)
