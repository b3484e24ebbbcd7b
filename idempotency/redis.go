// Package idempotency guards against duplicate webhook deliveries. Providers
// redeliver IPN events until they see a 2xx, so the embedding application
// needs a way to acknowledge a redelivery without reprocessing it.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusProcessed  = "PROCESSED"

	// A short expiry on IN_PROGRESS prevents a crashed handler from blocking
	// redeliveries forever.
	InProgressExpiry = 10 * time.Second
	ProcessedExpiry  = 24 * time.Hour
)

// ErrInProgress means another delivery of the same event is being handled
// right now.
var ErrInProgress = errors.New("webhook event already in progress")

// Store is the dedupe contract for webhook deliveries, keyed by gateway name
// and the provider's transaction identifier.
type Store interface {
	// BeginProcessing returns (true, nil) when the event was already handled
	// or is being handled, and (false, nil) when this delivery is the first
	// and has been marked in progress.
	BeginProcessing(ctx context.Context, gatewayName, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, gatewayName, eventID string) error
	IsProcessed(ctx context.Context, gatewayName, eventID string) (bool, error)
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func eventKey(gatewayName, eventID string) string {
	return fmt.Sprintf("webhook:%s:%s", gatewayName, eventID)
}

func (r *RedisStore) BeginProcessing(ctx context.Context, gatewayName, eventID string) (bool, error) {
	key := eventKey(gatewayName, eventID)

	status, err := r.client.Get(ctx, key).Result()
	if err == nil && status == StatusProcessed {
		return true, nil
	}

	// SETNX makes the check-and-mark atomic across concurrent deliveries.
	set, err := r.client.SetNX(ctx, key, StatusInProgress, InProgressExpiry).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX: %w", err)
	}
	if !set {
		return true, ErrInProgress
	}
	return false, nil
}

func (r *RedisStore) MarkProcessed(ctx context.Context, gatewayName, eventID string) error {
	return r.client.Set(ctx, eventKey(gatewayName, eventID), StatusProcessed, ProcessedExpiry).Err()
}

func (r *RedisStore) IsProcessed(ctx context.Context, gatewayName, eventID string) (bool, error) {
	status, err := r.client.Get(ctx, eventKey(gatewayName, eventID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis GET: %w", err)
	}
	return status == StatusProcessed, nil
}
