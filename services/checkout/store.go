package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fitpass/models"
	"fitpass/utils"
)

// processingTTL bounds how long a stuck processing flag can block a checkout.
const processingTTL = 30 * time.Second

// Store persists checkout state between requests. TryLock/Unlock implement
// the per-checkout single-flag mutual exclusion: one in-flight attempt per
// modal instance, rejected (not queued) otherwise.
type Store interface {
	Save(ctx context.Context, state models.CheckoutState) error
	Get(ctx context.Context, checkoutID string) (*models.CheckoutState, error)
	Delete(ctx context.Context, checkoutID string) error
	TryLock(ctx context.Context, checkoutID string) (bool, error)
	Unlock(ctx context.Context, checkoutID string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore builds the Redis-backed checkout store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func stateKey(id string) string { return utils.CheckoutKeyPrefix + id }
func lockKey(id string) string  { return utils.CheckoutKeyPrefix + "lock:" + id }

func (s *redisStore) Save(ctx context.Context, state models.CheckoutState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(state.CheckoutID), data, utils.CheckoutTTL).Err(); err != nil {
		return fmt.Errorf("failed to save checkout state: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, checkoutID string) (*models.CheckoutState, error) {
	data, err := s.client.Get(ctx, stateKey(checkoutID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout state: %w", err)
	}
	var state models.CheckoutState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to parse checkout state: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Delete(ctx context.Context, checkoutID string) error {
	return s.client.Del(ctx, stateKey(checkoutID)).Err()
}

func (s *redisStore) TryLock(ctx context.Context, checkoutID string) (bool, error) {
	return s.client.SetNX(ctx, lockKey(checkoutID), "1", processingTTL).Result()
}

func (s *redisStore) Unlock(ctx context.Context, checkoutID string) error {
	return s.client.Del(ctx, lockKey(checkoutID)).Err()
}
