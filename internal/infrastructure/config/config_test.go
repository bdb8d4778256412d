package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "decora-storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "fixtures", cfg.Catalog.Source)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
		assert.Equal(t, 1500*time.Millisecond, cfg.Checkout.PlacementLatency)
		assert.Zero(t, cfg.Checkout.FailureRatio)
		assert.Equal(t, "/images", cfg.Storage.ImageBaseURL)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "9090")
		t.Setenv("STOREFRONT_SESSION_STORE", "redis")
		t.Setenv("STOREFRONT_SESSION_TTL", "2h")
		t.Setenv("STOREFRONT_CHECKOUT_PLACEMENT_LATENCY", "10ms")
		t.Setenv("STOREFRONT_CHECKOUT_FAILURE_RATIO", "0.25")
		t.Setenv("STOREFRONT_REDIS_PORT", "6380")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "redis", cfg.Session.Store)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, 10*time.Millisecond, cfg.Checkout.PlacementLatency)
		assert.Equal(t, 0.25, cfg.Checkout.FailureRatio)
		assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	})

	t.Run("rejects unknown session store", func(t *testing.T) {
		t.Setenv("STOREFRONT_SESSION_STORE", "memcached")

		_, err := Load()
		assert.ErrorContains(t, err, "session.store")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "csv" }, "catalog.source"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"failure ratio above one", func(c *Config) { c.Checkout.FailureRatio = 1.5 }, "checkout.failure_ratio"},
		{"idle exceeds open", func(c *Config) { c.Database.MaxIdleConns = 50 }, "max_idle_conns"},
		{"sampling ratio negative", func(c *Config) { c.Telemetry.SamplingRatio = -0.1 }, "sampling_ratio"},
		{"production needs a long secret", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "short"
		}, "session.secret"},
		{"production forbids simulated failures", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "0123456789abcdef0123456789abcdef"
			c.Checkout.FailureRatio = 0.1
		}, "failure_ratio"},
		{"production forbids wildcard cors", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "0123456789abcdef0123456789abcdef"
			c.HTTP.CORSAllowOrigins = []string{"*"}
		}, "cors_allow_origins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "shop", Password: "p@ss word", DBName: "storefront", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/storefront?sslmode=disable", d.DSN())
}
