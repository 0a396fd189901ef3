package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const transitionKeyPrefix = "transition:"

// RedisGuard is the transition guard for deployments running more than one
// instance: the in-flight set lives in Redis instead of process memory.
// The TTL bounds how long a crashed instance can keep an order locked.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) TryAcquire(ctx context.Context, orderID int64) (bool, error) {
	return g.client.SetNX(ctx, transitionKey(orderID), 1, g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, orderID int64) error {
	return g.client.Del(ctx, transitionKey(orderID)).Err()
}

func transitionKey(orderID int64) string {
	return transitionKeyPrefix + strconv.FormatInt(orderID, 10)
}
