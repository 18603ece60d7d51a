package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sextosistema/agency-platform/internal/api/router"
	appconfig "github.com/sextosistema/agency-platform/internal/config"
	"github.com/sextosistema/agency-platform/internal/contact"
	httpmiddleware "github.com/sextosistema/agency-platform/internal/http/middleware"
	"github.com/sextosistema/agency-platform/internal/leads"
	"github.com/sextosistema/agency-platform/internal/notify"
	"github.com/sextosistema/agency-platform/internal/observability/metrics"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

func main() {
	// Local .env is a dev convenience; missing file is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	var logger *logging.Logger
	if cfg.IsProduction() {
		logger = logging.New(cfg.LogLevel)
	} else {
		logger = logging.NewText(cfg.LogLevel)
	}
	logger.Info("starting agency-platform API server", "env", cfg.Env, "port", cfg.Port)

	intakeMetrics := metrics.NewIntakeMetrics(nil)

	// Lead storage: Postgres when configured, in-memory otherwise so the
	// site still works on a laptop without a database.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory lead store")
		repo = leads.NewInMemoryRepository()
	}

	sender := buildEmailSender(cfg, logger)

	notifySvc := notify.NewService(sender, notify.ServiceConfig{
		AdminEmail: cfg.AdminEmail,
		SiteURL:    cfg.SiteURL,
		Production: cfg.IsProduction(),
	}, logger, intakeMetrics)

	leadsHandler := leads.NewHandler(repo, notifySvc, cfg.DuplicateWindow, logger, intakeMetrics)
	contactHandler := contact.NewHandler(sender, cfg.AdminEmail, logger, intakeMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		ContactHandler:     contactHandler,
		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     promhttp.Handler(),
		FormRateLimit:      buildFormRateLimit(cfg, logger),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight email dispatches drain before exiting.
	notifySvc.Wait()
	logger.Info("server stopped")
}

// buildEmailSender picks the provider from config, falling back to the
// log-only sender whenever credentials are missing.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config, email delivery disabled", "error", err)
			return notify.NewLogSender(logger)
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger); s != nil {
			return s
		}
	case "log":
		// Explicitly requested log-only mode.
	default:
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn("SENDGRID_API_KEY not set, email delivery disabled")
	}
	return notify.NewLogSender(logger)
}

// buildFormRateLimit prefers the Redis limiter when Redis is configured so
// the limit holds across instances.
func buildFormRateLimit(cfg *appconfig.Config, logger *logging.Logger) func(http.Handler) http.Handler {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		limiter := httpmiddleware.NewRedisRateLimiter(client, cfg.RateLimitBurst, time.Minute, logger)
		return httpmiddleware.RedisRateLimit(limiter)
	}
	return httpmiddleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst)
}
