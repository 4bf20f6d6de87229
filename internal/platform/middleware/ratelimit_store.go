// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tamsinleach/dramatis/internal/platform/constants"
)

// RedisCounter implements [Counter] on top of Redis INCR with a
// window-sized TTL, giving all API replicas a shared fixed-window count.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter wraps a connected Redis client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr increments the client's counter for the current window and returns
// the post-increment count. The TTL is set only when the key is created so
// the window does not slide.
func (counter *RedisCounter) Incr(ctx context.Context, clientIP string, window time.Duration) (int64, error) {
	key := constants.RedisPrefixRateLimit + clientIP

	pipe := counter.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}
