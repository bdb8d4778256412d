package storefront

import (
	"context"
	"fmt"

	"github.com/decora/storefront/internal/domain/cart"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// GetCart returns the priced cart
func (s *Service) GetCart(ctx context.Context, id uuid.UUID) (*CartResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, sess.Cart), nil
}

// CartCount returns the number of units in the cart
func (s *Service) CartCount(ctx context.Context, id uuid.UUID) (*CartCountResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CartCountResponse{Count: sess.Cart.Count()}, nil
}

// AddToCart adds a product variant. The product must exist and the color
// must be one it is offered in.
func (s *Service) AddToCart(ctx context.Context, id uuid.UUID, req AddToCartRequest) (*CartResponse, error) {
	product, ok := s.catalog.FindProduct(req.ProductID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %d not found", req.ProductID))
	}
	color := req.Color
	if color == "" {
		color = product.DefaultColor()
	}
	if !product.HasColor(color) {
		return nil, shared.ErrValidation.WithDetails(map[string]string{"color": "oneof"})
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := sess.AddToCart(product.ID, quantity, color)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, sess.Cart), nil
}

// UpdateCartItem sets a line quantity. Zero or less removes the line and
// unknown lines are left alone.
func (s *Service) UpdateCartItem(ctx context.Context, id, lineID uuid.UUID, quantity int) (*CartResponse, error) {
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.UpdateCartQuantity(lineID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, sess.Cart), nil
}

// RemoveCartItem deletes a line
func (s *Service) RemoveCartItem(ctx context.Context, id, lineID uuid.UUID) (*CartResponse, error) {
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.RemoveFromCart(lineID)
	})
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, sess.Cart), nil
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, id uuid.UUID) (*CartResponse, error) {
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.ClearCart()
	})
	if err != nil {
		return nil, err
	}
	return s.toCartResponse(ctx, sess.Cart), nil
}

func (s *Service) toCartResponse(ctx context.Context, c *cart.Cart) *CartResponse {
	priced := c.Price(s.catalog)
	lines := make([]CartLineResponse, 0, len(priced.Lines))
	for _, l := range priced.Lines {
		line := CartLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Color:     l.Color,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
			Available: l.Available(),
		}
		if l.Product != nil {
			unit := l.Product.UnitPrice()
			line.Name = l.Product.Name
			line.Image = s.resolveImage(ctx, l.Product.Thumbnail())
			line.UnitPrice = &unit
		}
		lines = append(lines, line)
	}
	return &CartResponse{
		Lines:    lines,
		Subtotal: priced.Subtotal,
		Count:    priced.Count,
	}
}
