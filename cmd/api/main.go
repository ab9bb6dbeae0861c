package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/adapters/lock"
	"eventregistration/internal/adapters/metrics"
	deliveryhttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title Event Registration API
// @version 1.0
// @description Registrations for event occurrences, capability links for registrants, and the stale-registration purge.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}

	tokens := auth.NewCapabilityTokenIssuer()
	permissions := auth.NewRolePermissionChecker()
	registrationService := services.NewRegistrationService(
		postgres.NewEventRepository(db),
		postgres.NewRegistrationRepository(db),
		tokens,
		services.NewEmailService(mailer, renderer, logger),
		services.NewAuthorizer(auth.NewOwnerOccurrencePermissions(), permissions),
		m,
		cfg.PublicBaseURL,
		cfg.DisplayLocation,
		logger,
	)
	purgeService := services.NewPurgeService(postgres.NewPurgeStore(db), m, cfg.Purge.BatchSize, logger)

	locker, closeLocker, err := newLocker(cfg.Purge.RedisURL, tokens)
	if err != nil {
		return err
	}
	defer closeLocker()
	scheduler := services.NewPurgeScheduler(purgeService, locker, cfg.Purge.Interval, cfg.Purge.LockTTL, logger)

	mux := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Purge:         controllers.NewPurgeController(logger, purgeService),
		Verifier:      auth.NewJWTVerifier(cfg.JWTSecret),
		Permissions:   permissions,
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:        logger,
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newLocker returns the Redis purge lock when redisURL is set and a local no-op lock otherwise.
func newLocker(redisURL string, tokens domain.TokenIssuer) (domain.Locker, func(), error) {
	if redisURL == "" {
		return lock.NoopLocker{}, func() {}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	return lock.NewRedisLocker(client, tokens), func() { _ = client.Close() }, nil
}
