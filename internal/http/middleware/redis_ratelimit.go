package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the window counter and starts its expiry on
// the first hit, atomically.
const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const (
	defaultRedisPrefix  = "sidus:rl:"
	redisLimiterTimeout = 250 * time.Millisecond
)

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisRateLimiter is a fixed-window counter shared by every replica.
// When Redis is unreachable requests are let through.
type RedisRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int64
	keyFn  KeyFunc
	prefix string
}

// NewRedisRateLimiter allows max requests per key in each window.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int, keyFn KeyFunc) *RedisRateLimiter {
	return newRedisRateLimiter(client, window, max, keyFn)
}

func newRedisRateLimiter(client redisEvaler, window time.Duration, max int, keyFn KeyFunc) *RedisRateLimiter {
	if window < time.Second {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if keyFn == nil {
		keyFn = KeyByUserOrIP()
	}
	return &RedisRateLimiter{
		client: client,
		window: window,
		max:    int64(max),
		keyFn:  keyFn,
		prefix: defaultRedisPrefix,
	}
}

// Allow counts one hit for key and reports whether it is within budget.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, redisLimiterTimeout)
	defer cancel()

	n, err := l.client.Eval(ctx, fixedWindowScript, []string{l.prefix + key}, int(l.window.Seconds())).Int64()
	if err != nil {
		return true
	}
	return n <= l.max
}

// Handler enforces the limit. Idempotent replays are not charged.
func (l *RedisRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || l.Allow(c.Request.Context(), l.keyFn(c)) {
			c.Next()
			return
		}
		tooManyRequests(c, "redis", l.window)
	}
}
