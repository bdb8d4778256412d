// Package storefront runs the shopper-facing session flows: starting a
// session, editing the cart and placing an order through checkout.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shipping"
	"github.com/decora/storefront/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs the token that identifies a session
type TokenIssuer interface {
	Issue(sessionID uuid.UUID) (auth.IssuedToken, error)
}

// ImageResolver turns a stored image key into a URL
type ImageResolver interface {
	ResolveImage(ctx context.Context, key string) (string, error)
}

// PlacementRecorder observes order placement attempts
type PlacementRecorder interface {
	RecordPlacement(ctx context.Context, d time.Duration, ok bool)
}

// Dependencies are the collaborators a Service needs. Images, Recorder
// and Logger are optional.
type Dependencies struct {
	Store    session.Store
	Catalog  catalog.Lookup
	Table    *shipping.Table
	Tokens   TokenIssuer
	Placer   checkout.OrderPlacer
	Events   shared.EventPublisher
	Images   ImageResolver
	Recorder PlacementRecorder
	Logger   *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithPlacementTimeout bounds a single order placement attempt
func WithPlacementTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.placementTimeout = d
	}
}

// WithClock overrides the time source used for order timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service owns session state. Every change to a session is a
// load-modify-save under that session's lock.
type Service struct {
	store    session.Store
	catalog  catalog.Lookup
	table    *shipping.Table
	tokens   TokenIssuer
	placer   checkout.OrderPlacer
	events   shared.EventPublisher
	images   ImageResolver
	recorder PlacementRecorder
	logger   *zap.Logger

	locks            *sessionLocks
	placements       sync.WaitGroup
	placementTimeout time.Duration
	now              func() time.Time
}

// NewService creates a new storefront Service
func NewService(deps Dependencies, opts ...Option) *Service {
	s := &Service{
		store:    deps.Store,
		catalog:  deps.Catalog,
		table:    deps.Table,
		tokens:   deps.Tokens,
		placer:   deps.Placer,
		events:   deps.Events,
		images:   deps.Images,
		recorder: deps.Recorder,
		logger:   deps.Logger,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession creates an empty session and signs its token
func (s *Service) StartSession(ctx context.Context) (*SessionResponse, error) {
	sess := session.New()
	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug("Session started", zap.String("session_id", sess.ID.String()))
	return &SessionResponse{
		SessionID: sess.ID,
		Token:     token.Token,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// EndSession discards a session and its cart
func (s *Service) EndSession(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Exists reports whether id refers to a live session
func (s *Service) Exists(ctx context.Context, id uuid.UUID) error {
	_, err := s.load(ctx, id)
	return err
}

// Wait blocks until in-flight order placements have finished or ctx ends
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.placements.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load fetches a session. A missing session is reported as invalid since
// callers only reach here with an id taken from a verified token.
func (s *Service) load(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, session.ErrSessionInvalid
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// save stores the session then publishes the events it raised. Publishing
// failures are logged; the state change already happened.
func (s *Service) save(ctx context.Context, sess *session.Session) error {
	events := sess.GetDomainEvents()
	sess.ClearDomainEvents()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if len(events) > 0 && s.events != nil {
		if err := s.events.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish session events",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// mutate runs fn on a freshly loaded session under its lock and saves the
// result. Nothing is saved when fn fails.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) (*session.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) resolveImage(ctx context.Context, key string) string {
	if key == "" || s.images == nil {
		return key
	}
	url, err := s.images.ResolveImage(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to resolve image", zap.String("key", key), zap.Error(err))
		return key
	}
	return url
}
