// Package kv keeps transient state in Redis: wizard sessions, in-progress
// exam answers and order rate limits.
package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Open connects to Redis and pings it.
func Open(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
