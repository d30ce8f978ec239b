package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type lookupCall struct {
	user, scope, key string
}

func idemEngine(t *testing.T, found bool, err error, calls *[]lookupCall) *gin.Engine {
	t.Helper()
	lookup := func(_ context.Context, user, scope, key string, _ time.Time) (bool, error) {
		*calls = append(*calls, lookupCall{user, scope, key})
		return found, err
	}
	setUser := func(c *gin.Context) {
		if u := c.GetHeader("X-Test-User"); u != "" {
			c.Set(ContextKeyUserID, u)
		}
	}
	r := newEngine(RequestID(), setUser, IdempotencyValidator(IdempotencyOptions{
		Scope: ScopeByRoute(map[string]string{"POST /soulmate": "soulmate"}),
	}, lookup))
	echo := func(c *gin.Context) {
		key, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{
			"key":    key,
			"scope":  GetIdempotencyScope(c),
			"replay": IsReplay(c),
			"bypass": IsRateBypass(c),
		})
	}
	r.POST("/soulmate", echo)
	r.POST("/soulmates", echo)
	return r
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	var calls []lookupCall
	r := idemEngine(t, true, nil, &calls)
	w := do(r, http.MethodPost, "/soulmate", map[string]string{"X-Test-User": "u1"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"key":""`) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if len(calls) != 0 {
		t.Fatalf("lookup should not run without a key")
	}
}

func TestIdempotency_BadKey(t *testing.T) {
	var calls []lookupCall
	r := idemEngine(t, false, nil, &calls)
	for _, key := range []string{"has space", "semi;colon", strings.Repeat("k", 201)} {
		w := do(r, http.MethodPost, "/soulmate", map[string]string{HeaderIdempotencyKey: key})
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "bad_idempotency_key") {
			t.Errorf("key %q: got %d %s", key, w.Code, w.Body.String())
		}
	}
}

func TestIdempotency_ScopeAndReplay(t *testing.T) {
	var calls []lookupCall
	r := idemEngine(t, true, nil, &calls)

	w := do(r, http.MethodPost, "/soulmate", map[string]string{HeaderIdempotencyKey: "abc-1", "X-Test-User": "u1"})
	body := w.Body.String()
	if !strings.Contains(body, `"scope":"soulmate"`) || !strings.Contains(body, `"replay":true`) || !strings.Contains(body, `"bypass":true`) {
		t.Fatalf("unexpected body %s", body)
	}
	if len(calls) != 1 || calls[0] != (lookupCall{"u1", "soulmate", "abc-1"}) {
		t.Fatalf("lookup calls: %+v", calls)
	}

	w = do(r, http.MethodPost, "/soulmates", map[string]string{HeaderIdempotencyKey: "abc-1", "X-Test-User": "u1"})
	if !strings.Contains(w.Body.String(), `"scope":"POST /soulmates"`) {
		t.Fatalf("unnamed route should use route scope: %s", w.Body.String())
	}
}

func TestIdempotency_AnonymousOrMissSkipsReplay(t *testing.T) {
	var calls []lookupCall
	r := idemEngine(t, true, nil, &calls)
	w := do(r, http.MethodPost, "/soulmate", map[string]string{HeaderIdempotencyKey: "abc"})
	if !strings.Contains(w.Body.String(), `"replay":false`) || len(calls) != 0 {
		t.Fatalf("anonymous request must not be looked up: %s %+v", w.Body.String(), calls)
	}

	calls = nil
	r = idemEngine(t, true, errors.New("db down"), &calls)
	w = do(r, http.MethodPost, "/soulmate", map[string]string{HeaderIdempotencyKey: "abc", "X-Test-User": "u1"})
	if !strings.Contains(w.Body.String(), `"replay":false`) || !strings.Contains(w.Body.String(), `"key":"abc"`) {
		t.Fatalf("lookup error should count as a miss: %s", w.Body.String())
	}
}
