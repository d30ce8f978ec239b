package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func authEngine(opts AuthOptions) *gin.Engine {
	r := newEngine(Authenticate(opts))
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	r.GET("/private", RequireUser(), func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	return r
}

func TestAuthenticate_ValidToken(t *testing.T) {
	r := authEngine(AuthOptions{Secret: testSecret, Audience: "authenticated"})
	tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "user-1",
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	w := do(r, http.MethodGet, "/private", map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	r := authEngine(AuthOptions{Secret: testSecret, Audience: "authenticated"})
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]string{
		"expired": signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "u", Audience: jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}),
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-another"), jwt.RegisteredClaims{
			Subject: "u", Audience: jwt.ClaimStrings{"authenticated"}, ExpiresAt: future,
		}),
		"wrong alg": signToken(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "u", Audience: jwt.ClaimStrings{"authenticated"}, ExpiresAt: future,
		}),
		"wrong audience": signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "u", Audience: jwt.ClaimStrings{"anon"}, ExpiresAt: future,
		}),
		"no subject": signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Audience: jwt.ClaimStrings{"authenticated"}, ExpiresAt: future,
		}),
	}
	for name, tok := range cases {
		w := do(r, http.MethodGet, "/open", map[string]string{"Authorization": "Bearer " + tok})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}
	if w := do(r, http.MethodGet, "/open", map[string]string{"Authorization": "Basic abc"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer scheme: expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_AnonymousAndUserHeader(t *testing.T) {
	r := authEngine(AuthOptions{Secret: testSecret})
	if w := do(r, http.MethodGet, "/open", nil); w.Code != http.StatusOK || w.Body.String() != "" {
		t.Fatalf("anonymous open route: %d %q", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/private", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous private route: %d", w.Code)
	}
	// header ignored unless enabled
	if w := do(r, http.MethodGet, "/private", map[string]string{HeaderUserID: "dev"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("X-User-ID must be ignored by default, got %d", w.Code)
	}

	dev := authEngine(AuthOptions{AllowUserHeader: true})
	w := do(dev, http.MethodGet, "/private", map[string]string{HeaderUserID: " dev "})
	if w.Code != http.StatusOK || w.Body.String() != "dev" {
		t.Fatalf("dev header: %d %q", w.Code, w.Body.String())
	}
}
