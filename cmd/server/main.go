// Command server runs the Decora storefront API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogapp "github.com/decora/storefront/internal/application/catalog"
	shippingapp "github.com/decora/storefront/internal/application/shipping"
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/infrastructure/auth"
	"github.com/decora/storefront/internal/infrastructure/cache"
	"github.com/decora/storefront/internal/infrastructure/config"
	"github.com/decora/storefront/internal/infrastructure/event"
	"github.com/decora/storefront/internal/infrastructure/fixtures"
	"github.com/decora/storefront/internal/infrastructure/logger"
	"github.com/decora/storefront/internal/infrastructure/ordering"
	"github.com/decora/storefront/internal/infrastructure/persistence"
	"github.com/decora/storefront/internal/infrastructure/storage"
	"github.com/decora/storefront/internal/infrastructure/telemetry"
	"github.com/decora/storefront/internal/interfaces/http/handler"
	"github.com/decora/storefront/internal/interfaces/http/middleware"
	"github.com/decora/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting Decora storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("session_store", cfg.Session.Store),
	)

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	checks := make(map[string]handler.Pinger)

	// Catalog
	var source catalog.Source = fixtures.NewCatalogSource()
	if cfg.Catalog.Source == "database" {
		db, err := persistence.NewDatabase(cfg.Database, log, cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
			if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.Driver, log); err != nil {
				return err
			}
		}
		checks["database"] = db
		source = persistence.NewGormCatalogRepository(db.DB)
	}
	cat, err := catalog.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("Catalog loaded", zap.Int("products", len(cat.Products())), zap.Int("categories", len(cat.Categories())))

	table, err := fixtures.ShippingTable()
	if err != nil {
		return fmt.Errorf("load shipping table: %w", err)
	}

	// Sessions
	store, err := cache.NewSessionStoreFactory(cfg.Session, cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()
	checks["session_store"] = store
	tokens := auth.NewSessionTokenService(cfg.Session)

	images, err := storage.NewImageResolver(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	// Events
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewOrderLogHandler(log))
	metrics, err := telemetry.NewStorefrontMetrics(providers.Meter())
	if err != nil {
		return err
	}
	bus.Subscribe(metrics)
	if err := bus.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = bus.Stop(context.Background()) }()

	svc := storefront.NewService(storefront.Dependencies{
		Store:    store,
		Catalog:  cat,
		Table:    table,
		Tokens:   tokens,
		Placer:   ordering.NewSimulatedPlacer(cfg.Checkout, log),
		Events:   bus,
		Images:   images,
		Recorder: metrics,
		Logger:   log,
	}, storefront.WithPlacementTimeout(cfg.Checkout.PlacementTimeout))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	submitLimiter := middleware.NewRateLimiter(cfg.HTTP.SubmitRateLimit, cfg.HTTP.SubmitRateBurst)
	defer submitLimiter.Stop()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	engine, err := router.NewEngine(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		Tracing:        cfg.Telemetry.Enabled,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS:           corsCfg,
		Security:       securityCfg,
		Tokens:         tokens,
		SubmitLimiter:  submitLimiter,
		Logger:         log,
	}, router.Handlers{
		Health:   handler.NewHealthHandler(cfg.App.Name, version, checks),
		Session:  handler.NewSessionHandler(svc),
		Catalog:  handler.NewCatalogHandler(catalogapp.NewService(cat, images, log)),
		Shipping: handler.NewShippingHandler(shippingapp.NewService(table)),
		Cart:     handler.NewCartHandler(svc),
		Checkout: handler.NewCheckoutHandler(svc),
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		// Placements run detached from requests; let them record their outcome
		if waitErr := svc.Wait(shutdownCtx); waitErr != nil {
			log.Warn("Order placements still running at shutdown", zap.Error(waitErr))
		}
		return err
	})
	return g.Wait()
}
