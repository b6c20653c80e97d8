package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore holds the cart under one key per session, for storefront shells
// that run hosted sessions instead of a local file.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	baseTTL   time.Duration
}

func NewRedisStore(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{
		client:    client,
		sessionID: sessionID,
		baseTTL:   15 * time.Minute,
	}
}

func (r *RedisStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var records []lineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	lines, err := fromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("decode cart records: %w", err)
	}

	return lines, nil
}

func (r *RedisStore) Save(ctx context.Context, lines []domain.LineItem) error {
	data, err := json.Marshal(toRecords(lines))
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, r.key(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) key() string {
	return fmt.Sprintf("cart:%s", r.sessionID)
}
