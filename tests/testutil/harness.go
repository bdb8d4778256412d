// Package testutil provides a fully wired storefront engine for tests that
// drive the HTTP API end to end.
package testutil

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/decora/storefront/internal/application/catalog"
	shippingapp "github.com/decora/storefront/internal/application/shipping"
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/infrastructure/auth"
	"github.com/decora/storefront/internal/infrastructure/cache"
	"github.com/decora/storefront/internal/infrastructure/config"
	"github.com/decora/storefront/internal/infrastructure/event"
	"github.com/decora/storefront/internal/infrastructure/fixtures"
	"github.com/decora/storefront/internal/infrastructure/storage"
	"github.com/decora/storefront/internal/interfaces/http/handler"
	"github.com/decora/storefront/internal/interfaces/http/middleware"
	"github.com/decora/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestOrderCode is returned by StaticPlacer on success
const TestOrderCode = "DEC-TEST01"

// StaticPlacer places every order with TestOrderCode, or fails with Err
type StaticPlacer struct {
	Err error
}

// PlaceOrder implements checkout.OrderPlacer
func (p *StaticPlacer) PlaceOrder(ctx context.Context, _ checkout.OrderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Err != nil {
		return "", p.Err
	}
	return TestOrderCode, nil
}

// Options customises the harness. Zero values select in-memory defaults.
type Options struct {
	Store         session.Store
	Source        catalog.Source
	Placer        checkout.OrderPlacer
	SubmitLimiter *middleware.RateLimiter
	Logger        *zap.Logger
}

// Storefront is a running engine plus the services behind it
type Storefront struct {
	Engine  *gin.Engine
	Service *storefront.Service
	Catalog *catalog.Catalog
	Events  *RecordingHandler

	bus    *event.InMemoryEventBus
	closer func() error
}

// NewStorefront wires the storefront the way cmd/server does
func NewStorefront(opts Options) (*Storefront, error) {
	ctx := context.Background()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	closer := func() error { return nil }
	store := opts.Store
	if store == nil {
		mem := cache.NewMemorySessionStore(time.Hour)
		store, closer = mem, mem.Close
	}
	src := opts.Source
	if src == nil {
		src = fixtures.NewCatalogSource()
	}
	placer := opts.Placer
	if placer == nil {
		placer = &StaticPlacer{}
	}

	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, errors.Join(err, closer())
	}
	table, err := fixtures.ShippingTable()
	if err != nil {
		return nil, errors.Join(err, closer())
	}

	recorder := NewRecordingHandler()
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(recorder)
	if err := bus.Start(ctx); err != nil {
		return nil, errors.Join(err, closer())
	}

	images := storage.NewStaticImageResolver("https://cdn.decora.dz")
	tokens := auth.NewSessionTokenService(config.SessionConfig{
		Secret: "test-secret-at-least-32-characters",
		Issuer: "decora",
		TTL:    time.Hour,
	})

	svc := storefront.NewService(storefront.Dependencies{
		Store:   store,
		Catalog: cat,
		Table:   table,
		Tokens:  tokens,
		Placer:  placer,
		Events:  bus,
		Images:  images,
		Logger:  log,
	})

	checks := map[string]handler.Pinger{}
	if p, ok := store.(handler.Pinger); ok {
		checks["session_store"] = p
	}

	engine, err := router.NewEngine(router.Config{
		ServiceName:   "storefront-test",
		MaxBodySize:   1 << 20,
		CORS:          middleware.DefaultCORSConfig(),
		Security:      middleware.DefaultSecurityConfig(),
		Tokens:        tokens,
		SubmitLimiter: opts.SubmitLimiter,
		Logger:        log,
	}, router.Handlers{
		Health:   handler.NewHealthHandler("storefront", "test", checks),
		Session:  handler.NewSessionHandler(svc),
		Catalog:  handler.NewCatalogHandler(catalogapp.NewService(cat, images, nil)),
		Shipping: handler.NewShippingHandler(shippingapp.NewService(table)),
		Cart:     handler.NewCartHandler(svc),
		Checkout: handler.NewCheckoutHandler(svc),
	})
	if err != nil {
		return nil, errors.Join(err, closer())
	}

	return &Storefront{
		Engine:  engine,
		Service: svc,
		Catalog: cat,
		Events:  recorder,
		bus:     bus,
		closer:  closer,
	}, nil
}

// WaitForPlacement blocks until every in-flight order placement settles
func (s *Storefront) WaitForPlacement(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Service.Wait(ctx)
}

// Close drains placements and releases the default session store
func (s *Storefront) Close() error {
	waitErr := s.WaitForPlacement(5 * time.Second)
	return errors.Join(waitErr, s.bus.Stop(context.Background()), s.closer())
}
