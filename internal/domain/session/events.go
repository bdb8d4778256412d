package session

import (
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSession = "Session"

// Event type constants
const (
	EventTypeSessionStarted        = "SessionStarted"
	EventTypeOrderSubmitted        = "OrderSubmitted"
	EventTypeOrderPlaced           = "OrderPlaced"
	EventTypeOrderSubmissionFailed = "OrderSubmissionFailed"
)

// SessionStartedEvent is raised when a browsing session begins
type SessionStartedEvent struct {
	shared.BaseDomainEvent
	SessionID uuid.UUID `json:"session_id"`
}

// NewSessionStartedEvent creates a new SessionStartedEvent
func NewSessionStartedEvent(s *Session) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionStarted, AggregateTypeSession, s.ID),
		SessionID:       s.ID,
	}
}

// OrderSubmittedEvent is raised when a checkout enters Submitting
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	SessionID    uuid.UUID `json:"session_id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	ItemCount    int       `json:"item_count"`
}

// NewOrderSubmittedEvent creates a new OrderSubmittedEvent
func NewOrderSubmittedEvent(s *Session, submissionID uuid.UUID) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmitted, AggregateTypeSession, s.ID),
		SessionID:       s.ID,
		SubmissionID:    submissionID,
		ItemCount:       s.Cart.Count(),
	}
}

// OrderPlacedEvent is raised when a submission completes
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	SessionID      uuid.UUID       `json:"session_id"`
	OrderCode      string          `json:"order_code"`
	Region         string          `json:"region"`
	ShippingMethod string          `json:"shipping_method"`
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(s *Session, c checkout.Confirmation) *OrderPlacedEvent {
	items := 0
	for _, l := range c.Lines {
		items += l.Quantity
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeSession, s.ID),
		SessionID:       s.ID,
		OrderCode:       c.OrderCode,
		Region:          c.Region,
		ShippingMethod:  string(c.ShippingMethod),
		ItemCount:       items,
		Subtotal:        c.Subtotal.Amount(),
		Shipping:        c.Shipping.Amount(),
		Total:           c.Total.Amount(),
	}
}

// OrderSubmissionFailedEvent is raised when placement fails and the
// checkout returns to Filling
type OrderSubmissionFailedEvent struct {
	shared.BaseDomainEvent
	SessionID    uuid.UUID `json:"session_id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	Reason       string    `json:"reason"`
}

// NewOrderSubmissionFailedEvent creates a new OrderSubmissionFailedEvent
func NewOrderSubmissionFailedEvent(s *Session, submissionID uuid.UUID, reason string) *OrderSubmissionFailedEvent {
	return &OrderSubmissionFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmissionFailed, AggregateTypeSession, s.ID),
		SessionID:       s.ID,
		SubmissionID:    submissionID,
		Reason:          reason,
	}
}
