package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	redacted        = "[REDACTED]"
	maxLoggedQuery  = 2048
	maxLoggedHeader = 512
)

// Identifiers scrubbed from query strings and header values. UUIDs go
// first so the phone pattern cannot bite into their digit groups.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// defaultMaskedHeaders carry credentials or webhook signatures.
var defaultMaskedHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "Stripe-Signature"}

// RedactOptions adds headers to the always-masked set.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger emits one structured access log per request with
// credentials masked and emails, phone numbers and UUIDs scrubbed from the
// query and headers. Bodies are never logged. It also attaches the
// request-scoped logger used by handlers and services.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	mask := make(map[string]struct{}, len(defaultMaskedHeaders)+len(opts.MaskHeaders))
	for _, h := range append(append([]string{}, defaultMaskedHeaders...), opts.MaskHeaders...) {
		if h = strings.TrimSpace(h); h != "" {
			mask[strings.ToLower(h)] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		route := routeOf(c)

		attachLogger(c, log.With().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("route", route).
			Logger())

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("route", route).
			Str("user_id", UserID(c)).
			Str("remote_ip", c.ClientIP()).
			Str("query", scrub(truncate(c.Request.URL.RawQuery, maxLoggedQuery))).
			Interface("headers", scrubHeaders(c, mask)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("http_request")
	}
}

func scrubHeaders(c *gin.Context, mask map[string]struct{}) map[string]string {
	out := make(map[string]string, len(c.Request.Header))
	for k, vv := range c.Request.Header {
		if _, ok := mask[strings.ToLower(k)]; ok {
			out[k] = redacted
			continue
		}
		out[k] = scrub(truncate(strings.Join(vv, ", "), maxLoggedHeader))
	}
	return out
}

func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// routeOf prefers the registered route pattern to keep logs and metric
// labels bounded.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
