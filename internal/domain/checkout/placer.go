package checkout

import (
	"context"

	"github.com/google/uuid"
)

// OrderRequest is what a placer needs to accept an order
type OrderRequest struct {
	SessionID    uuid.UUID
	SubmissionID uuid.UUID
	Form         Form
	Summary      Summary
}

// OrderPlacer accepts an order and returns its public order code. An
// error leaves the checkout to be failed and retried by the customer.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (string, error)
}
