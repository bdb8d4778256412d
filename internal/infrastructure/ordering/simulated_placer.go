// Package ordering places orders. The storefront has no fulfilment
// backend, so placement is simulated with a delay and an optional
// failure rate.
package ordering

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrPlacementRejected is returned for simulated failures
var ErrPlacementRejected = errors.New("order placement rejected")

// SimulatedPlacer waits for the configured latency and then accepts the
// order, or rejects it with probability failureRatio.
type SimulatedPlacer struct {
	latency      time.Duration
	failureRatio float64
	roll         func() float64
	logger       *zap.Logger
}

// NewSimulatedPlacer creates a placer from checkout config
func NewSimulatedPlacer(cfg config.CheckoutConfig, logger *zap.Logger) *SimulatedPlacer {
	return &SimulatedPlacer{
		latency:      cfg.PlacementLatency,
		failureRatio: cfg.FailureRatio,
		roll:         rand.Float64,
		logger:       logger.Named("order_placer"),
	}
}

func (p *SimulatedPlacer) PlaceOrder(ctx context.Context, req checkout.OrderRequest) (string, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if p.failureRatio > 0 && p.roll() < p.failureRatio {
		p.logger.Debug("Simulated placement failure",
			zap.String("submission_id", req.SubmissionID.String()))
		return "", ErrPlacementRejected
	}
	return checkout.NewOrderCode(), nil
}

var _ checkout.OrderPlacer = (*SimulatedPlacer)(nil)
