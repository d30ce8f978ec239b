// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, the database, the OpenAI, storage and Stripe credentials, auth,
// rate limiting and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "sidus-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
	Environment string  // DEPLOYMENT_ENV, e.g. "production"
}

// DBConfig selects and locates the database.
type DBConfig struct {
	Driver      string // DB_DRIVER: sqlite|postgres
	Path        string // DB_PATH, SQLite file
	DatabaseURL string // DATABASE_URL, Postgres DSN
}

// OpenAIConfig holds the text and image generation settings.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	ChatModel     string
	AnalysisModel string
	ImageModel    string
	Timeout       time.Duration
}

// StorageConfig locates the bucket portraits are re-hosted on.
type StorageConfig struct {
	Bucket          string
	CredentialsFile string
	PublicURL       string
	Prefix          string
}

// StripeConfig holds subscription billing settings.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
	TrialDays     int
	SuccessURL    string
	CancelURL     string
}

// AuthConfig configures access-token verification.
type AuthConfig struct {
	JWTSecret       string // SUPABASE_JWT_SECRET
	Audience        string // SUPABASE_JWT_AUDIENCE
	AllowUserHeader bool   // AUTH_ALLOW_USER_HEADER, development only
}

// RedisConfig enables the shared rate limiter when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // generation chains remote calls, so this is long
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DB               DBConfig
	OpenAI           OpenAIConfig
	Storage          StorageConfig
	Stripe           StripeConfig
	Auth             AuthConfig
	SoulmateCooldown time.Duration
	CitiesPath       string
	CityCacheSize    int

	// Rate limiting
	RateRPS       float64       // tokens per second (>= 0), in-memory limiter
	RateBurst     int           // bucket size (>= 1), in-memory limiter
	RateWindow    time.Duration // Redis fixed window
	RateWindowMax int           // requests per window, Redis limiter
	Redis         RedisConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DB: DBConfig{
			Driver:      strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
			Path:        getenv("DB_PATH", "sidus.db"),
			DatabaseURL: getenv("DATABASE_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:        getenv("OPENAI_API_KEY", ""),
			BaseURL:       getenv("OPENAI_BASE_URL", ""),
			ChatModel:     getenv("OPENAI_CHAT_MODEL", ""),
			AnalysisModel: getenv("OPENAI_ANALYSIS_MODEL", ""),
			ImageModel:    getenv("OPENAI_IMAGE_MODEL", ""),
			Timeout:       getdur("OPENAI_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Bucket:          getenv("GCS_BUCKET", ""),
			CredentialsFile: getenv("GCS_CREDENTIALS_FILE", ""),
			PublicURL:       getenv("STORAGE_PUBLIC_URL", ""),
			Prefix:          getenv("STORAGE_PREFIX", "soulmates"),
		},
		Stripe: StripeConfig{
			SecretKey:     getenv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getenv("STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       getenv("STRIPE_PRICE_ID", ""),
			TrialDays:     getint("STRIPE_TRIAL_DAYS", 7),
			SuccessURL:    getenv("CHECKOUT_SUCCESS_URL", "sidus://subscription/success"),
			CancelURL:     getenv("CHECKOUT_CANCEL_URL", "sidus://subscription/cancel"),
		},
		Auth: AuthConfig{
			JWTSecret:       getenv("SUPABASE_JWT_SECRET", ""),
			Audience:        getenv("SUPABASE_JWT_AUDIENCE", "authenticated"),
			AllowUserHeader: getbool("AUTH_ALLOW_USER_HEADER", false),
		},
		SoulmateCooldown: getdur("SOULMATE_COOLDOWN", 30*time.Second),
		CitiesPath:       getenv("CITIES_PATH", "data/cities.json"),
		CityCacheSize:    getint("CITY_CACHE_SIZE", 1000),

		// Rate limiting
		RateRPS:       getfloat("RATE_RPS", 5.0),
		RateBurst:     getint("RATE_BURST", 10),
		RateWindow:    getdur("RATE_WINDOW", time.Minute),
		RateWindowMax: getint("RATE_WINDOW_MAX", 120),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "sidus-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
			Environment: getenv("DEPLOYMENT_ENV", "development"),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.DB.Driver == "postgresql" {
		cfg.DB.Driver = DriverPostgres
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.DB.DatabaseURL) == "" {
			return cfg, errors.New("DATABASE_URL must be set when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if cfg.OpenAI.Timeout <= 0 {
		return cfg, errors.New("OPENAI_TIMEOUT must be > 0")
	}
	if cfg.Stripe.TrialDays < 0 {
		return cfg, errors.New("STRIPE_TRIAL_DAYS must be >= 0")
	}
	if cfg.SoulmateCooldown < 0 {
		return cfg, errors.New("SOULMATE_COOLDOWN must be >= 0")
	}
	if cfg.CityCacheSize < 0 {
		return cfg, errors.New("CITY_CACHE_SIZE must be >= 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.RateWindow < time.Second {
		return cfg, errors.New("RATE_WINDOW must be at least 1s")
	}
	if cfg.RateWindowMax < 1 {
		return cfg, errors.New("RATE_WINDOW_MAX must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
