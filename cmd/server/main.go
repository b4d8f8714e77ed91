// Command server runs the outreach backend HTTP API.
//
// Startup order: environment → config → logging → database → Redis cache →
// OpenTelemetry → router → HTTP server with graceful shutdown. The Redis
// fast-path cache is optional; when it cannot be reached the service starts
// anyway and the daily cap is enforced from the ledger alone.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/AlexBaum-ai/outreach-backend/docs"
	"github.com/AlexBaum-ai/outreach-backend/internal/cache"
	"github.com/AlexBaum-ai/outreach-backend/internal/config"
	httpapi "github.com/AlexBaum-ai/outreach-backend/internal/http"
	"github.com/AlexBaum-ai/outreach-backend/internal/observability"
	"github.com/AlexBaum-ai/outreach-backend/internal/repo"
	"github.com/AlexBaum-ai/outreach-backend/internal/services"
	"github.com/AlexBaum-ai/outreach-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title        Outreach Backend API
// @version      1.0
// @description  Bulk outreach dispatcher: templated bulk messaging with a daily recipient cap, block registry, and delivery tracking.
// @BasePath     /api/v1
func main() {
	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// Fast-path counter cache; degraded mode without it.
	var rateCache services.RateLimitCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.New(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).
				Msg("redis unavailable, daily cap will be enforced from the ledger only")
		} else {
			rateCache = rc
			defer rc.Close()
		}
	}

	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup opentelemetry")
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, rateCache, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("opentelemetry shutdown")
	}
	log.Info().Msg("bye")
}
