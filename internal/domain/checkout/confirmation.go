package checkout

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/decora/storefront/internal/domain/cart"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/decora/storefront/internal/domain/shipping"
)

// EstimatedDelivery is the delivery window quoted on every confirmation
const EstimatedDelivery = "3-5 business days"

const orderCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// OrderCodeLength is the number of characters in a confirmation code
const OrderCodeLength = 8

// NewOrderCode returns an 8-character uppercase base-36 code for display.
// It is not a secret and uniqueness is only probabilistic.
func NewOrderCode() string {
	var b strings.Builder
	b.Grow(OrderCodeLength)
	for range OrderCodeLength {
		b.WriteByte(orderCodeAlphabet[rand.IntN(len(orderCodeAlphabet))])
	}
	return b.String()
}

// ConfirmedLine is a purchased line frozen at order time
type ConfirmedLine struct {
	ProductID int64             `json:"product_id"`
	Name      string            `json:"name"`
	Image     string            `json:"image,omitempty"`
	Color     string            `json:"color"`
	Quantity  int               `json:"quantity"`
	UnitPrice valueobject.Money `json:"unit_price"`
	LineTotal valueobject.Money `json:"line_total"`
}

// Confirmation is what the customer sees after a successful order
type Confirmation struct {
	OrderCode         string                 `json:"order_code"`
	PlacedAt          time.Time              `json:"placed_at"`
	Recipient         string                 `json:"recipient"`
	Email             string                 `json:"email,omitempty"`
	Phone             string                 `json:"phone"`
	Region            string                 `json:"region"`
	ShippingMethod    shipping.Method        `json:"shipping_method"`
	Address           string                 `json:"address,omitempty"`
	PickupOffice      *shipping.PickupOffice `json:"pickup_office,omitempty"`
	Lines             []ConfirmedLine        `json:"lines"`
	Subtotal          valueobject.Money      `json:"subtotal"`
	Shipping          valueobject.Money      `json:"shipping"`
	Total             valueobject.Money      `json:"total"`
	EstimatedDelivery string                 `json:"estimated_delivery"`
}

// NewConfirmation freezes the priced cart and delivery details. Lines whose
// product did not resolve are left out, matching the subtotal.
func NewConfirmation(code string, form Form, priced cart.Priced, table *shipping.Table, placedAt time.Time) Confirmation {
	c := Confirmation{
		OrderCode:         code,
		PlacedAt:          placedAt,
		Recipient:         form.RecipientName(),
		Email:             form.Email,
		Phone:             form.Phone,
		ShippingMethod:    form.ShippingMethod,
		Lines:             make([]ConfirmedLine, 0, len(priced.Lines)),
		Subtotal:          priced.Subtotal,
		Shipping:          table.Cost(form.RegionID, form.ShippingMethod),
		EstimatedDelivery: EstimatedDelivery,
	}
	if form.RegionID != nil {
		if r, ok := table.Region(*form.RegionID); ok {
			c.Region = r.Name
		}
	}
	if form.ShippingMethod == shipping.MethodOfficePickup {
		if o, ok := table.Office(form.PickupOfficeID); ok {
			c.PickupOffice = &o
		}
	} else {
		c.Address = form.Address
	}
	for _, l := range priced.Lines {
		if !l.Available() {
			continue
		}
		c.Lines = append(c.Lines, ConfirmedLine{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Image:     l.Product.Thumbnail(),
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.UnitPrice(),
			LineTotal: l.LineTotal,
		})
	}
	c.Total = c.Subtotal.Add(c.Shipping)
	return c
}
