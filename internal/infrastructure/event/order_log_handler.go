package event

import (
	"context"

	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderLogHandler writes an audit line for every order lifecycle event
type OrderLogHandler struct {
	logger *zap.Logger
}

// NewOrderLogHandler creates the handler
func NewOrderLogHandler(logger *zap.Logger) *OrderLogHandler {
	return &OrderLogHandler{logger: logger.Named("orders")}
}

func (h *OrderLogHandler) EventTypes() []string {
	return []string{
		session.EventTypeOrderSubmitted,
		session.EventTypeOrderPlaced,
		session.EventTypeOrderSubmissionFailed,
	}
}

func (h *OrderLogHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	log := h.logger
	if traceID := telemetry.TraceID(ctx); traceID != "" {
		log = log.With(zap.String("trace_id", traceID))
	}
	switch e := ev.(type) {
	case *session.OrderSubmittedEvent:
		log.Info("Order submitted",
			zap.String("session_id", e.SessionID.String()),
			zap.String("submission_id", e.SubmissionID.String()),
			zap.Int("items", e.ItemCount),
		)
	case *session.OrderPlacedEvent:
		log.Info("Order placed",
			zap.String("session_id", e.SessionID.String()),
			zap.String("order_code", e.OrderCode),
			zap.String("region", e.Region),
			zap.String("shipping_method", e.ShippingMethod),
			zap.Int("items", e.ItemCount),
			zap.String("total", e.Total.String()),
		)
	case *session.OrderSubmissionFailedEvent:
		log.Warn("Order submission failed",
			zap.String("session_id", e.SessionID.String()),
			zap.String("submission_id", e.SubmissionID.String()),
			zap.String("reason", e.Reason),
		)
	}
	return nil
}
