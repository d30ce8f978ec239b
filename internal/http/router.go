// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// authentication, idempotency, rate limiting, CORS, and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic router setup; all dependencies injected through Deps
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/billing"
	"github.com/tbourn/sidus-backend/internal/cities"
	"github.com/tbourn/sidus-backend/internal/config"
	"github.com/tbourn/sidus-backend/internal/http/handlers"
	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/services"
	"github.com/tbourn/sidus-backend/internal/storage"
)

// Deps are the long-lived collaborators built by main.
type Deps struct {
	DB       *gorm.DB
	LLM      *llm.Client
	Uploader services.ImageUploader
	Payments services.PaymentGateway
	Cities   *cities.Index
	// Redis, when set, backs the shared fixed-window rate limiter.
	Redis *redis.Client
}

// withDefaults fills missing collaborators with inert ones that fail with
// their package's ErrNotConfigured.
func (d Deps) withDefaults() Deps {
	if d.LLM == nil {
		d.LLM = llm.New(llm.Config{})
	}
	if d.Uploader == nil {
		d.Uploader = storage.New(nil, storage.Config{})
	}
	if d.Payments == nil {
		d.Payments = billing.NewGateway(billing.Config{})
	}
	if d.Cities == nil {
		d.Cities = cities.New(nil)
	}
	return d
}

// idempotency scope of soulmate generation, shared by middleware and handler.
const scopeSoulmate = "soulmate"

var (
	corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match",
		middleware.HeaderUserID, middleware.HeaderIdempotencyKey, handlers.HeaderStripeSignature,
	}
	corsExpose = []string{"X-Request-ID", "Content-Length", "ETag", handlers.HeaderIdempotencyReplayed}
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), identity,
// idempotency and rate limiting, CORS and security headers, health and
// metrics endpoints, and then mounts the API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Authenticate: resolve the caller (anonymous allowed here)
//  8. Idempotency validator (needs the caller; before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, Redis-backed when configured, bypass on replay)
//  10. CORS, security headers and gzip
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	base := cfg.APIBasePath
	if base == "/" {
		base = ""
	}

	deps = deps.withDefaults()

	// Dependency injection: services ← db/clients
	idemSvc := &services.IdempotencyService{DB: deps.DB, TTL: cfg.IdempotencyTTL}
	soulSvc := &services.SoulmateService{
		DB:       deps.DB,
		Images:   deps.LLM,
		Analyst:  deps.LLM,
		Uploader: deps.Uploader,
		Cooldown: cfg.SoulmateCooldown,
	}
	profSvc := &services.ProfileService{DB: deps.DB}
	if deps.LLM.Configured() {
		profSvc.Insights = deps.LLM
	}
	h := handlers.New(handlers.Services{
		Soulmates:   soulSvc,
		Profiles:    profSvc,
		People:      &services.PeopleService{DB: deps.DB},
		Chat:        &services.ChatService{DB: deps.DB, LLM: deps.LLM},
		Cities:      services.NewCityService(deps.Cities, cfg.CityCacheSize),
		Billing:     &services.BillingService{DB: deps.DB, Gateway: deps.Payments},
		Idempotency: idemSvc,
	})

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Identity
	r.Use(middleware.Authenticate(middleware.AuthOptions{
		Secret:          cfg.Auth.JWTSecret,
		Audience:        cfg.Auth.Audience,
		AllowUserHeader: cfg.Auth.AllowUserHeader,
		Leeway:          30 * time.Second,
	}))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope: middleware.ScopeByRoute(map[string]string{
				http.MethodPost + " " + base + "/soulmate": scopeSoulmate,
			}),
		},
		idemSvc.Exists,
	))

	// 9) Rate limiter per user/IP
	if deps.Redis != nil {
		r.Use(middleware.NewRedisRateLimiter(deps.Redis, cfg.RateWindow, cfg.RateWindowMax, middleware.KeyByUserOrIP()).Handler())
	} else {
		r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler())
	}

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExpose,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					hdr := c.Writer.Header()
					hdr.Set("Access-Control-Allow-Origin", origin)
					hdr.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExpose,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Analyses and people lists compress well.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := groupWithPrefix(r, base)
	{
		// Public
		api.GET("/astro/compatibility", h.Compatibility)
		api.POST("/astro/big-three", h.BigThree)
		api.GET("/cities", h.SearchCities)
		api.POST("/webhook/stripe", h.StripeWebhook)
	}

	authed := api.Group("", middleware.RequireUser())
	{
		// Soulmates
		authed.POST("/soulmate", h.GenerateSoulmate)
		authed.GET("/soulmate", h.LatestSoulmate)
		authed.POST("/soulmates", h.SaveSoulmate)
		authed.GET("/soulmates", h.ListSoulmates)
		authed.DELETE("/soulmates", h.DeleteLatestSoulmate)

		// Profile and people
		authed.POST("/profile", h.SaveProfile)
		authed.GET("/profile", h.GetProfile)
		authed.POST("/people", h.AddPerson)
		authed.GET("/people", h.ListPeople)

		// Chat
		authed.POST("/chat", h.Chat)
		authed.GET("/chat/history", h.ChatHistory)

		// Billing
		authed.POST("/billing/checkout-session", h.CreateCheckout)
		authed.GET("/billing/subscription-status", h.SubscriptionStatus)
		authed.POST("/billing/cancel-subscription", h.CancelSubscription)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
