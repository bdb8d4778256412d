package router

import (
	"net/http"

	"github.com/decora/storefront/internal/infrastructure/logger"
	"github.com/decora/storefront/internal/interfaces/http/dto"
	"github.com/decora/storefront/internal/interfaces/http/handler"
	"github.com/decora/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers are the storefront endpoints
type Handlers struct {
	Health   *handler.HealthHandler
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Shipping *handler.ShippingHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// Config controls the middleware chain
type Config struct {
	APIVersion     string
	ServiceName    string
	Tracing        bool
	MaxBodySize    int64
	TrustedProxies []string
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	Tokens         middleware.TokenVerifier
	// SubmitLimiter throttles checkout submissions; nil disables it
	SubmitLimiter *middleware.RateLimiter
	Logger        *zap.Logger
}

// NewEngine builds the gin engine with the full middleware chain, the
// health probes and the /api/<version> storefront routes.
func NewEngine(cfg Config, h Handlers) (*gin.Engine, error) {
	handler.ConfigureValidator()
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(cfg.Security),
		middleware.CORS(cfg.CORS),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	engine.Use(
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.Tracing}),
		middleware.SpanEnricher(),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	health := engine.Group("/health")
	health.GET("", h.Health.Liveness)
	health.GET("/ready", h.Health.Readiness)

	var opts []RouterOption
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	NewRouter(engine, opts...).Register(StorefrontGroups(cfg, h)...).Setup()
	return engine, nil
}

// StorefrontGroups returns the route groups mounted under the API prefix
func StorefrontGroups(cfg Config, h Handlers) []RouteRegistrar {
	auth := middleware.SessionAuth(cfg.Tokens)

	sessions := NewDomainGroup("sessions", "/sessions").
		POST("", h.Session.Start).
		DELETE("", auth, h.Session.End)

	catalog := NewDomainGroup("catalog", "/catalog").
		GET("/categories", h.Catalog.ListCategories).
		GET("/products", h.Catalog.ListProducts).
		GET("/products/:id", h.Catalog.GetProduct).
		GET("/trending", h.Catalog.Trending).
		GET("/filters", h.Catalog.FilterOptions)

	shipping := NewDomainGroup("shipping", "/shipping").
		GET("/regions", h.Shipping.ListRegions).
		GET("/regions/:id/offices", h.Shipping.ListOffices)

	cart := NewDomainGroup("cart", "/cart").
		Use(auth).
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		GET("/count", h.Cart.Count).
		POST("/items", h.Cart.AddItem).
		PATCH("/items/:lineId", h.Cart.UpdateItem).
		DELETE("/items/:lineId", h.Cart.RemoveItem)

	submit := []gin.HandlerFunc{h.Checkout.Submit}
	if cfg.SubmitLimiter != nil {
		submit = append([]gin.HandlerFunc{middleware.RateLimit(cfg.SubmitLimiter, middleware.SessionOrIPKey)}, submit...)
	}
	checkout := NewDomainGroup("checkout", "/checkout").
		Use(auth).
		GET("", h.Checkout.Get).
		PUT("/form", h.Checkout.UpdateForm).
		POST("/submit", submit...).
		POST("/reset", h.Checkout.Reset)

	return []RouteRegistrar{sessions, catalog, shipping, cart, checkout}
}
