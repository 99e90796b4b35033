// Package publish pushes forecast snapshots to Redis for home-automation
// subscribers.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lox/barocast/internal/forecast"
)

const DefaultPrefix = "barocast"

// redisClient is the subset of *redis.Client the publisher uses.
type redisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type RedisPublisher struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

// NewRedisPublisher publishes snapshots under prefix. Stored snapshots expire
// after ttl; zero keeps them forever.
func NewRedisPublisher(client *redis.Client, prefix string, ttl time.Duration) *RedisPublisher {
	return newRedisPublisher(client, prefix, ttl)
}

func newRedisPublisher(client redisClient, prefix string, ttl time.Duration) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix, ttl: ttl}
}

func (p *RedisPublisher) SnapshotKey() string { return p.prefix + ":snapshot" }
func (p *RedisPublisher) Channel() string     { return p.prefix + ":updates" }

func (p *RedisPublisher) Publish(ctx context.Context, snap *forecast.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := p.client.Set(ctx, p.SnapshotKey(), payload, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.SnapshotKey(), err)
	}
	if err := p.client.Publish(ctx, p.Channel(), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.Channel(), err)
	}
	return nil
}

// Dial connects to Redis and checks the connection.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
