package storefront

import (
	"time"

	shippingapp "github.com/decora/storefront/internal/application/shipping"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SessionResponse is returned when a session starts
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AddToCartRequest adds units of a product. Quantity defaults to 1 and
// Color to the product's first color.
type AddToCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  *int   `json:"quantity"`
	Color     string `json:"color" binding:"max=50"`
}

// UpdateCartItemRequest sets a line quantity; zero or less removes it
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartLineResponse is one priced cart line. Lines whose product left the
// catalog are listed with Available false and a zero total.
type CartLineResponse struct {
	ID        uuid.UUID          `json:"id"`
	ProductID int64              `json:"product_id"`
	Name      string             `json:"name,omitempty"`
	Image     string             `json:"image,omitempty"`
	Color     string             `json:"color"`
	Quantity  int                `json:"quantity"`
	UnitPrice *valueobject.Money `json:"unit_price,omitempty"`
	LineTotal valueobject.Money  `json:"line_total"`
	Available bool               `json:"available"`
}

// CartResponse is the priced cart
type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal valueobject.Money  `json:"subtotal"`
	Count    int                `json:"count"`
}

// CartCountResponse is the badge count
type CartCountResponse struct {
	Count int `json:"count"`
}

// CheckoutResponse is the checkout page state. Offices lists the pickup
// offices of the selected region.
type CheckoutResponse struct {
	State        checkout.State               `json:"state"`
	Form         checkout.Form                `json:"form"`
	Summary      checkout.Summary             `json:"summary"`
	Notice       string                       `json:"notice,omitempty"`
	Offices      []shippingapp.OfficeResponse `json:"offices"`
	Confirmation *checkout.Confirmation       `json:"confirmation,omitempty"`
}
