// Command server runs the Sidus HTTP API.
//
// @title                      Sidus API
// @version                    1.0
// @description                Astrology and soulmate backend for the Sidus app.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/sidus-backend/docs"
	"github.com/tbourn/sidus-backend/internal/billing"
	"github.com/tbourn/sidus-backend/internal/cities"
	"github.com/tbourn/sidus-backend/internal/config"
	httpapi "github.com/tbourn/sidus-backend/internal/http"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/observability"
	"github.com/tbourn/sidus-backend/internal/repo"
	"github.com/tbourn/sidus-backend/internal/services"
	"github.com/tbourn/sidus-backend/internal/storage"
	"github.com/tbourn/sidus-backend/internal/sysutil"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const purgeEvery = time.Hour

func main() {
	// Optional .env for local runs; the process environment wins.
	envErr := godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	sysutil.SetupLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("could not read .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
		shutdownOTel = func(context.Context) error { return nil }
	}

	db, err := repo.Open(cfg.DB.Driver, cfg.DB.Path, cfg.DB.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ai := llm.New(llm.Config{
		APIKey:        cfg.OpenAI.APIKey,
		BaseURL:       cfg.OpenAI.BaseURL,
		ChatModel:     cfg.OpenAI.ChatModel,
		AnalysisModel: cfg.OpenAI.AnalysisModel,
		ImageModel:    cfg.OpenAI.ImageModel,
		Timeout:       cfg.OpenAI.Timeout,
	})
	if !ai.Configured() {
		log.Warn().Msg("OPENAI_API_KEY not set; chat and generation will return 503")
	}

	storageCfg := storage.Config{
		Bucket:          cfg.Storage.Bucket,
		CredentialsFile: cfg.Storage.CredentialsFile,
		PublicURL:       cfg.Storage.PublicURL,
		Prefix:          cfg.Storage.Prefix,
	}
	uploader, err := storage.NewGCS(ctx, storageCfg)
	if err != nil {
		log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("storage unavailable; uploads will return 503")
		uploader = storage.New(nil, storageCfg)
	}
	defer func() { _ = uploader.Close() }()

	payments := billing.NewGateway(billing.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		PriceID:       cfg.Stripe.PriceID,
		TrialDays:     int64(cfg.Stripe.TrialDays),
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
	})

	cityIdx, err := cities.LoadFile(cfg.CitiesPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.CitiesPath).Msg("city autocomplete disabled")
		cityIdx = cities.New(nil)
	} else {
		log.Info().Int("cities", cityIdx.Len()).Msg("city index loaded")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis ping failed; rate limiter fails open until it recovers")
		}
		cancel()
		defer func() { _ = rdb.Close() }()
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:       db,
		LLM:      ai,
		Uploader: uploader,
		Payments: payments,
		Cities:   cityIdx,
		Redis:    rdb,
	}, cfg)

	go purgeIdempotency(ctx, &services.IdempotencyService{DB: db, TTL: cfg.IdempotencyTTL})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

// purgeIdempotency drops expired Idempotency-Key records until ctx ends.
func purgeIdempotency(ctx context.Context, svc *services.IdempotencyService) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := svc.Purge(ctx, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}
