package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decora/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter(t *testing.T) {
	t.Run("defaults to v1", func(t *testing.T) {
		r := NewRouter(gin.New())
		assert.Equal(t, "/api/v1", r.BasePath())
	})

	t.Run("custom version", func(t *testing.T) {
		r := NewRouter(gin.New(), WithAPIVersion("v2"))
		assert.Equal(t, "/api/v2", r.BasePath())
	})

	t.Run("setup mounts registrars", func(t *testing.T) {
		engine := gin.New()
		catalog := NewDomainGroup("catalog", "/catalog").
			GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "products") })
		shipping := NewDomainGroup("shipping", "/shipping").
			GET("/regions", func(c *gin.Context) { c.String(http.StatusOK, "regions") })

		NewRouter(engine).Register(catalog, shipping).Setup()

		w := serve(engine, http.MethodGet, "/api/v1/catalog/products")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "products", w.Body.String())

		w = serve(engine, http.MethodGet, "/api/v1/shipping/regions")
		assert.Equal(t, "regions", w.Body.String())
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("cart", "/cart")
		assert.Equal(t, "cart", g.Name())
		assert.Equal(t, "/cart", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		engine := gin.New()
		NewDomainGroup("cart", "/cart").
			GET("", ok).
			DELETE("", ok).
			POST("/items", ok).
			PATCH("/items/:lineId", ok).
			PUT("/form", ok).
			RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/cart"},
			{http.MethodDelete, "/api/v1/cart"},
			{http.MethodPost, "/api/v1/cart/items"},
			{http.MethodPatch, "/api/v1/cart/items/abc"},
			{http.MethodPut, "/api/v1/cart/form"},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code, "route %s %s should work", tt.method, tt.path)
		}
	})

	t.Run("middleware applies to the group only", func(t *testing.T) {
		engine := gin.New()
		api := engine.Group("/api/v1")

		NewDomainGroup("cart", "/cart").
			Use(func(c *gin.Context) {
				c.Header("X-Test-Middleware", "applied")
				c.Next()
			}).
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) }).
			RegisterRoutes(api)
		NewDomainGroup("catalog", "/catalog").
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) }).
			RegisterRoutes(api)

		assert.Equal(t, "applied", serve(engine, http.MethodGet, "/api/v1/cart").Header().Get("X-Test-Middleware"))
		assert.Empty(t, serve(engine, http.MethodGet, "/api/v1/catalog").Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("shipping", "/shipping")
		g.Group("regions", "/regions").
			GET("", func(c *gin.Context) { c.String(http.StatusOK, "regions") }).
			GET("/:id/offices", func(c *gin.Context) { c.String(http.StatusOK, "offices "+c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "regions", serve(engine, http.MethodGet, "/api/v1/shipping/regions").Body.String())
		assert.Equal(t, "offices 16", serve(engine, http.MethodGet, "/api/v1/shipping/regions/16/offices").Body.String())
		assert.Equal(t, []string{"GET /shipping/regions", "GET /shipping/regions/:id/offices"}, g.Routes())
	})
}

func TestStorefrontGroups(t *testing.T) {
	var routes []string
	for _, registrar := range StorefrontGroups(Config{}, Handlers{}) {
		g, ok := registrar.(*DomainGroup)
		require.True(t, ok)
		routes = append(routes, g.Routes()...)
	}

	assert.ElementsMatch(t, []string{
		"POST /sessions",
		"DELETE /sessions",
		"GET /catalog/categories",
		"GET /catalog/products",
		"GET /catalog/products/:id",
		"GET /catalog/trending",
		"GET /catalog/filters",
		"GET /shipping/regions",
		"GET /shipping/regions/:id/offices",
		"GET /cart",
		"DELETE /cart",
		"GET /cart/count",
		"POST /cart/items",
		"PATCH /cart/items/:lineId",
		"DELETE /cart/items/:lineId",
		"GET /checkout",
		"PUT /checkout/form",
		"POST /checkout/submit",
		"POST /checkout/reset",
	}, routes)
}

func TestNewEngine_RequiresSessionForCart(t *testing.T) {
	engine, err := NewEngine(Config{Tokens: rejectAll{}}, Handlers{})
	require.NoError(t, err)

	w := serve(engine, http.MethodGet, "/api/v1/cart")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

type rejectAll struct{}

func (rejectAll) Verify(string) (uuid.UUID, error) { return uuid.Nil, errors.New("rejected") }
