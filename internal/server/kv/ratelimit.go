package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// Limiter is a fixed-window counter per key.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: prefix,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow counts one hit for key. A non-positive limit or window disables
// limiting.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 || l.window <= 0 || key == "" {
		return true, nil
	}
	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	allowed, err := l.script.Run(ctx, l.rdb, []string{redisKey}, ttl, l.limit).Int64()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}
