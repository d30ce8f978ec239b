package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKeyUserID is where the authenticated subject is stored.
const ContextKeyUserID = "userID"

// HeaderUserID is the development identity header honoured only when
// AuthOptions.AllowUserHeader is set.
const HeaderUserID = "X-User-ID"

var errMissingSubject = errors.New("token has no subject")

// AuthOptions configures Authenticate.
type AuthOptions struct {
	// Secret is the HS256 signing secret of the identity provider.
	Secret string
	// Audience, when non-empty, must appear in the token's aud claim.
	Audience string
	// AllowUserHeader accepts X-User-ID when no bearer token is sent.
	AllowUserHeader bool
	// Leeway tolerates small clock skew on exp/nbf.
	Leeway time.Duration
}

// Authenticate resolves the caller's identity from a Supabase access token
// and stores the subject under ContextKeyUserID. Requests without
// credentials pass through anonymously; a token that fails verification is
// rejected with 401. Use RequireUser on routes that need an identity.
func Authenticate(opts AuthOptions) gin.HandlerFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	if opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(opts.Leeway))
	}
	parser := jwt.NewParser(parserOpts...)
	secret := []byte(opts.Secret)

	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			if opts.AllowUserHeader {
				if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" {
					c.Set(ContextKeyUserID, uid)
				}
			}
			c.Next()
			return
		}
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") || len(secret) == 0 {
			unauthorized(c, "invalid authorization header")
			return
		}

		sub, err := parseSubject(parser, secret, strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("rejected access token")
			unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ContextKeyUserID, sub)
		c.Next()
	}
}

// RequireUser rejects requests that Authenticate left anonymous.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			unauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated subject, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parseSubject(parser *jwt.Parser, secret []byte, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return secret, nil })
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errMissingSubject
	}
	return claims.Subject, nil
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(HeaderRequestID),
		"code":       "unauthorized",
		"message":    msg,
	})
}
