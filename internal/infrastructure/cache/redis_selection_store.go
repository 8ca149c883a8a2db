package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/markethub/backend/internal/domain/subscription"
)

// RedisSelectionStore implements SelectionStore using Redis.
// This is suitable for distributed deployments where the pending plan
// selection must survive process restarts and be visible to all instances.
type RedisSelectionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSelectionStore creates a new Redis-backed selection store
func NewRedisSelectionStore(cfg RedisConfig, ttl time.Duration) (*RedisSelectionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSelectionStore{
		client:    client,
		keyPrefix: "subscription:selection:",
		ttl:       ttl,
	}, nil
}

// NewRedisSelectionStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSelectionStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSelectionStore {
	if keyPrefix == "" {
		keyPrefix = "subscription:selection:"
	}
	return &RedisSelectionStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Put stores the pending selection for a user, refreshing the TTL
func (s *RedisSelectionStore) Put(ctx context.Context, userKey string, sel subscription.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+userKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}

	return nil
}

// Get retrieves the pending selection; found is false when absent or expired
func (s *RedisSelectionStore) Get(ctx context.Context, userKey string) (subscription.Selection, bool, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+userKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return subscription.Selection{}, false, nil
		}
		return subscription.Selection{}, false, fmt.Errorf("failed to read selection: %w", err)
	}

	var sel subscription.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return subscription.Selection{}, false, fmt.Errorf("failed to decode selection: %w", err)
	}

	return sel, true, nil
}

// Clear removes the pending selection. Clearing an absent slot is not an error.
func (s *RedisSelectionStore) Clear(ctx context.Context, userKey string) error {
	if err := s.client.Del(ctx, s.keyPrefix+userKey).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisSelectionStore) Close() error {
	return s.client.Close()
}

// Ensure RedisSelectionStore implements SelectionStore
var _ subscription.SelectionStore = (*RedisSelectionStore)(nil)
