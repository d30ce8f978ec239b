package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type fakeEvaler struct {
	counts map[string]int64
	err    error
	args   []any
}

func (f *fakeEvaler) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	f.args = args
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[keys[0]]++
	cmd.SetVal(f.counts[keys[0]])
	return cmd
}

func TestRedisRateLimiter_Window(t *testing.T) {
	ev := &fakeEvaler{counts: map[string]int64{}}
	l := newRedisRateLimiter(ev, time.Minute, 2, func(*gin.Context) string { return "user:u1" })

	r := newEngine(l.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodGet, "/x", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
	w := do(r, http.MethodGet, "/x", nil)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "60" {
		t.Fatalf("got %d Retry-After=%q", w.Code, w.Header().Get("Retry-After"))
	}
	if _, ok := ev.counts["sidus:rl:user:u1"]; !ok {
		t.Fatalf("key not prefixed: %v", ev.counts)
	}
	if len(ev.args) != 1 || ev.args[0] != 60 {
		t.Fatalf("expiry arg = %v", ev.args)
	}
}

func TestRedisRateLimiter_FailsOpen(t *testing.T) {
	l := newRedisRateLimiter(&fakeEvaler{err: errors.New("connection refused")}, time.Minute, 1, nil)
	for i := 0; i < 5; i++ {
		if !l.Allow(context.Background(), "k") {
			t.Fatalf("redis errors must let requests through")
		}
	}
	var nilLimiter *RedisRateLimiter
	if !nilLimiter.Allow(context.Background(), "k") {
		t.Fatalf("nil limiter must allow")
	}
}

func TestRedisRateLimiter_Defaults(t *testing.T) {
	l := newRedisRateLimiter(&fakeEvaler{counts: map[string]int64{}}, 0, 0, nil)
	if l.window != time.Minute || l.max != 1 || l.keyFn == nil {
		t.Fatalf("defaults not applied: %+v", l)
	}
}
