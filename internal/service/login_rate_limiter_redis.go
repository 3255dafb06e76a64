package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisLoginFailureScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const redisLimiterTimeout = 500 * time.Millisecond

type redisLoginRateLimiter struct {
	client redisCommander
	window time.Duration
	max    int
	prefix string
}

type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisLoginRateLimiter comparte el contador de fallos entre instancias via Redis.
// Si Redis falla el limiter deja pasar el intento.
func NewRedisLoginRateLimiter(client *redis.Client, window time.Duration, max int) LoginRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:fail:",
	}
}

func (l *redisLoginRateLimiter) Allow(key string) bool {
	redisKey, ok := l.key(key)
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	count, err := l.client.Get(ctx, redisKey).Int()
	if err != nil {
		// redis.Nil: sin fallos registrados; cualquier otro error deja pasar
		return true
	}
	return count < l.max
}

func (l *redisLoginRateLimiter) RecordFailure(key string) {
	redisKey, ok := l.key(key)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	_ = l.client.Eval(ctx, redisLoginFailureScript, []string{redisKey}, seconds).Err()
}

func (l *redisLoginRateLimiter) Reset(key string) {
	redisKey, ok := l.key(key)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	_ = l.client.Del(ctx, redisKey).Err()
}

func (l *redisLoginRateLimiter) key(key string) (string, bool) {
	if l == nil || l.client == nil {
		return "", false
	}
	normalized := normalizeLimiterKey(key)
	if normalized == "" {
		return "", false
	}
	return l.prefix + normalized, true
}
