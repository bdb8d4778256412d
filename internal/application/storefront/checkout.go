package storefront

import (
	"context"
	"errors"
	"time"

	shippingapp "github.com/decora/storefront/internal/application/shipping"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GetCheckout returns the checkout state with its priced summary
func (s *Service) GetCheckout(ctx context.Context, id uuid.UUID) (*CheckoutResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toCheckoutResponse(ctx, sess), nil
}

// UpdateCheckoutForm replaces the form, applying the region and office
// rules of the rate table
func (s *Service) UpdateCheckoutForm(ctx context.Context, id uuid.UUID, form checkout.Form) (*CheckoutResponse, error) {
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.UpdateCheckoutForm(form, s.table)
	})
	if err != nil {
		return nil, err
	}
	return s.toCheckoutResponse(ctx, sess), nil
}

// SubmitCheckout validates the cart and form, moves the checkout to
// Submitting and places the order in the background. The placement does
// not inherit the request's cancellation.
func (s *Service) SubmitCheckout(ctx context.Context, id uuid.UUID) (*CheckoutResponse, error) {
	var req checkout.OrderRequest
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		submissionID, err := sess.BeginSubmit(s.table)
		if err != nil {
			return err
		}
		req = checkout.OrderRequest{
			SessionID:    sess.ID,
			SubmissionID: submissionID,
			Form:         sess.Checkout.Form,
			Summary:      sess.Checkout.Price(sess.Cart, s.catalog, s.table),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Checkout submitted",
		zap.String("session_id", id.String()),
		zap.String("submission_id", req.SubmissionID.String()))

	s.placements.Add(1)
	go s.placeOrder(context.WithoutCancel(ctx), req)

	return s.toCheckoutResponse(ctx, sess), nil
}

// placeOrder runs one placement attempt and records its outcome on the
// session: Complete with a confirmation, or back to Filling with a notice.
func (s *Service) placeOrder(ctx context.Context, req checkout.OrderRequest) {
	defer s.placements.Done()

	ctx, span := telemetry.StartSpan(ctx, "checkout.place_order",
		attribute.String("session.id", req.SessionID.String()),
		attribute.String("submission.id", req.SubmissionID.String()),
		attribute.Int("order.items", req.Summary.Count),
	)

	placeCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.placementTimeout > 0 {
		placeCtx, cancel = context.WithTimeout(ctx, s.placementTimeout)
	}
	start := time.Now()
	code, placeErr := s.placer.PlaceOrder(placeCtx, req)
	cancel()
	if s.recorder != nil {
		s.recorder.RecordPlacement(ctx, time.Since(start), placeErr == nil)
	}

	_, err := s.mutate(ctx, req.SessionID, func(sess *session.Session) error {
		if placeErr != nil {
			return sess.FailSubmit(req.SubmissionID, placeErr.Error())
		}
		_, err := sess.CompleteSubmit(req.SubmissionID, code, s.catalog, s.table, s.now())
		return err
	})
	if err != nil {
		s.logger.Error("Failed to record order outcome",
			zap.String("session_id", req.SessionID.String()),
			zap.String("submission_id", req.SubmissionID.String()),
			zap.Error(err))
	}
	if placeErr != nil {
		s.logger.Warn("Order placement failed",
			zap.String("session_id", req.SessionID.String()),
			zap.Error(placeErr))
	}
	span.SetAttributes(attribute.String("order.code", code))
	telemetry.EndSpan(span, errors.Join(placeErr, err))
}

// ResetCheckout starts a fresh checkout after a completed order
func (s *Service) ResetCheckout(ctx context.Context, id uuid.UUID) (*CheckoutResponse, error) {
	sess, err := s.mutate(ctx, id, func(sess *session.Session) error {
		return sess.ResetCheckout()
	})
	if err != nil {
		return nil, err
	}
	return s.toCheckoutResponse(ctx, sess), nil
}

func (s *Service) toCheckoutResponse(ctx context.Context, sess *session.Session) *CheckoutResponse {
	co := sess.Checkout
	resp := &CheckoutResponse{
		State:   co.State,
		Form:    co.Form,
		Summary: co.Price(sess.Cart, s.catalog, s.table),
		Notice:  co.Notice,
		Offices: []shippingapp.OfficeResponse{},
	}
	if co.Form.RegionID != nil {
		resp.Offices = shippingapp.ToOfficeResponses(s.table.OfficesIn(*co.Form.RegionID))
	}
	if co.Confirmation != nil {
		confirmation := *co.Confirmation
		confirmation.Lines = make([]checkout.ConfirmedLine, len(co.Confirmation.Lines))
		for i, l := range co.Confirmation.Lines {
			l.Image = s.resolveImage(ctx, l.Image)
			confirmation.Lines[i] = l
		}
		resp.Confirmation = &confirmation
	}
	return resp
}
