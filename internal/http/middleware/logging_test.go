package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := do(r, http.MethodGet, "/x", nil)
	rid := w.Header().Get(HeaderRequestID)
	if rid == "" || w.Body.String() != rid {
		t.Fatalf("generated id mismatch: header=%q body=%q", rid, w.Body.String())
	}

	w = do(r, http.MethodGet, "/x", map[string]string{HeaderRequestID: "abc-123"})
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("inbound id not reused: %q", got)
	}

	w = do(r, http.MethodGet, "/x", map[string]string{HeaderRequestID: strings.Repeat("a", 200)})
	if got := w.Header().Get(HeaderRequestID); len(got) > maxRequestIDLen {
		t.Fatalf("oversized inbound id should be replaced, got %d bytes", len(got))
	}
}

func TestRecovery_JSON500WithRequestID(t *testing.T) {
	buf := withCapturedLogger(t)
	r := newEngine(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := do(r, http.MethodGet, "/boom", map[string]string{HeaderRequestID: "rid-1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["request_id"] != "rid-1" || body["code"] != "internal_error" {
		t.Fatalf("body: %v", body)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestRecovery_AfterWrite(t *testing.T) {
	withCapturedLogger(t)
	r := newEngine(Recovery())
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})
	w := do(r, http.MethodGet, "/late", nil)
	if w.Body.String() != "partial" {
		t.Fatalf("body should be left as written, got %q", w.Body.String())
	}
}

func TestLoggerFrom_FallbackAndContext(t *testing.T) {
	withCapturedLogger(t)
	r := newEngine(RequestID(), RedactingLogger(RedactOptions{}))
	r.GET("/ctx", func(c *gin.Context) {
		if LoggerFrom(c) == nil {
			t.Fatalf("nil logger")
		}
		// services log through the request context
		if zerolog.Ctx(c.Request.Context()).GetLevel() == zerolog.Disabled {
			t.Fatalf("request context has no logger")
		}
		c.Status(http.StatusNoContent)
	})
	if w := do(r, http.MethodGet, "/ctx", nil); w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}

	bare := newEngine()
	bare.GET("/bare", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("fallback works")
		c.Status(http.StatusOK)
	})
	do(bare, http.MethodGet, "/bare", nil)
}
