// Package session is the aggregate that owns one browsing session's cart
// and checkout. All cart and checkout changes go through it.
package session

import (
	"context"
	"time"

	"github.com/decora/storefront/internal/domain/cart"
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shipping"
	"github.com/google/uuid"
)

// Session is the aggregate root for a shopper's cart and checkout
type Session struct {
	shared.BaseAggregateRoot
	Cart     *cart.Cart         `json:"cart"`
	Checkout *checkout.Checkout `json:"checkout"`
}

// New starts an empty session
func New() *Session {
	s := &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Cart:              cart.New(),
		Checkout:          checkout.New(),
	}
	s.AddDomainEvent(NewSessionStartedEvent(s))
	return s
}

// ErrSessionInvalid is returned when a token refers to no live session
var ErrSessionInvalid = shared.NewDomainError("SESSION_INVALID", "Your session is invalid or has expired")

// Store persists sessions for their lifetime. Get returns
// shared.ErrNotFound for unknown or expired sessions.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// cartLocked rejects cart changes while an order is being placed, so the
// cart being priced cannot move under the submission.
func (s *Session) cartLocked() error {
	if s.Checkout.State == checkout.StateSubmitting {
		return shared.ErrCheckoutInProgress
	}
	return nil
}

// AddToCart adds units of a product variant
func (s *Session) AddToCart(productID int64, quantity int, color string) (cart.LineItem, error) {
	if err := s.cartLocked(); err != nil {
		return cart.LineItem{}, err
	}
	line, err := s.Cart.AddItem(productID, quantity, color)
	if err != nil {
		return cart.LineItem{}, err
	}
	s.IncrementVersion()
	return line, nil
}

// UpdateCartQuantity sets a line quantity; zero or less removes the line
func (s *Session) UpdateCartQuantity(lineID uuid.UUID, quantity int) error {
	if err := s.cartLocked(); err != nil {
		return err
	}
	s.Cart.UpdateQuantity(lineID, quantity)
	s.IncrementVersion()
	return nil
}

// RemoveFromCart deletes a line
func (s *Session) RemoveFromCart(lineID uuid.UUID) error {
	if err := s.cartLocked(); err != nil {
		return err
	}
	s.Cart.Remove(lineID)
	s.IncrementVersion()
	return nil
}

// ClearCart empties the cart
func (s *Session) ClearCart() error {
	if err := s.cartLocked(); err != nil {
		return err
	}
	s.Cart.Clear()
	s.IncrementVersion()
	return nil
}

// UpdateCheckoutForm replaces the checkout form
func (s *Session) UpdateCheckoutForm(f checkout.Form, table *shipping.Table) error {
	if err := s.Checkout.UpdateForm(f, table); err != nil {
		return err
	}
	s.IncrementVersion()
	return nil
}

// BeginSubmit moves the checkout to Submitting
func (s *Session) BeginSubmit(table *shipping.Table) (uuid.UUID, error) {
	id, err := s.Checkout.BeginSubmit(s.Cart, table)
	if err != nil {
		return uuid.Nil, err
	}
	s.IncrementVersion()
	s.AddDomainEvent(NewOrderSubmittedEvent(s, id))
	return id, nil
}

// CompleteSubmit freezes the order, clears the cart and raises OrderPlaced
func (s *Session) CompleteSubmit(submissionID uuid.UUID, code string, lookup catalog.Lookup, table *shipping.Table, placedAt time.Time) (checkout.Confirmation, error) {
	confirmation := checkout.NewConfirmation(code, s.Checkout.Form, s.Cart.Price(lookup), table, placedAt)
	if err := s.Checkout.Complete(submissionID, confirmation, s.Cart); err != nil {
		return checkout.Confirmation{}, err
	}
	s.IncrementVersion()
	s.AddDomainEvent(NewOrderPlacedEvent(s, confirmation))
	return confirmation, nil
}

// FailSubmit returns the checkout to Filling and keeps the cart
func (s *Session) FailSubmit(submissionID uuid.UUID, reason string) error {
	if err := s.Checkout.Fail(submissionID); err != nil {
		return err
	}
	s.IncrementVersion()
	s.AddDomainEvent(NewOrderSubmissionFailedEvent(s, submissionID, reason))
	return nil
}

// ResetCheckout starts a fresh checkout after a completed order
func (s *Session) ResetCheckout() error {
	if err := s.Checkout.Reset(); err != nil {
		return err
	}
	s.IncrementVersion()
	return nil
}
