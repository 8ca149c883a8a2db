package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/subscription"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// SelectionStoreFactory creates pending-selection stores based on configuration
type SelectionStoreFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SelectionStoreFactoryOption is a functional option for configuring the factory
type SelectionStoreFactoryOption func(*SelectionStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SelectionStoreFactoryOption {
	return func(f *SelectionStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) SelectionStoreFactoryOption {
	return func(f *SelectionStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSelectionStoreFactory creates a new factory
func NewSelectionStoreFactory(cfg config.RedisConfig, ttl time.Duration, opts ...SelectionStoreFactoryOption) *SelectionStoreFactory {
	f := &SelectionStoreFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based selection store
func (f *SelectionStoreFactory) CreateRedisStore() (subscription.SelectionStore, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	store, err := NewRedisSelectionStore(redisCfg, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis selection store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates an in-memory selection store
// This is suitable for single-instance deployments and testing
// WARNING: In-memory stores do not share state across process instances
// and lose pending selections on restart
func (f *SelectionStoreFactory) CreateInMemoryStore() subscription.SelectionStore {
	return NewInMemorySelectionStore(f.ttl)
}

// CreateStore creates a selection store based on whether Redis is available
// It tries to create a Redis store first, and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true
func (f *SelectionStoreFactory) CreateStore() (subscription.SelectionStore, error) {
	// Try Redis first
	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis selection store")
		return store, nil
	}

	// Check if fallback is allowed
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for pending selections but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory selection store. "+
		"Pending plan selections will not survive a restart.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
