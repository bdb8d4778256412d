package cache

import (
	"fmt"
	"io"

	"github.com/decora/storefront/internal/domain/session"
	"github.com/decora/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClosableStore is a session store owning resources to release on shutdown
type ClosableStore interface {
	session.Store
	io.Closer
}

// SessionStoreFactory picks the session store from configuration
type SessionStoreFactory struct {
	sessionConfig         config.SessionConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SessionStoreFactoryOption configures the factory
type SessionStoreFactoryOption func(*SessionStoreFactory)

// WithLogger sets the factory logger
func WithLogger(logger *zap.Logger) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// the memory store. Enabled by default.
func WithInMemoryFallback(allow bool) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSessionStoreFactory creates a factory
func NewSessionStoreFactory(sessionCfg config.SessionConfig, redisCfg config.RedisConfig, opts ...SessionStoreFactoryOption) *SessionStoreFactory {
	f := &SessionStoreFactory{
		sessionConfig:         sessionCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the configured store
func (f *SessionStoreFactory) CreateStore() (ClosableStore, error) {
	if f.sessionConfig.Store != "redis" {
		f.logger.Info("Using in-memory session store", zap.Duration("ttl", f.sessionConfig.TTL))
		return NewMemorySessionStore(f.sessionConfig.TTL), nil
	}

	store, err := NewRedisSessionStore(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.sessionConfig.KeyPrefix, f.sessionConfig.TTL)
	if err == nil {
		f.logger.Info("Using Redis session store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis session store unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session store. "+
		"Sessions will not be shared between instances.",
		zap.Error(err),
	)
	return NewMemorySessionStore(f.sessionConfig.TTL), nil
}
