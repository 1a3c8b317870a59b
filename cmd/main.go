package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Khushiyant/nibtara/config"
	"github.com/Khushiyant/nibtara/db"
	"github.com/Khushiyant/nibtara/internal/advisory"
	"github.com/Khushiyant/nibtara/internal/auth/handler"
	repo "github.com/Khushiyant/nibtara/internal/auth/repository/postgres"
	"github.com/Khushiyant/nibtara/internal/auth/service"
	"github.com/Khushiyant/nibtara/internal/events"
	"github.com/Khushiyant/nibtara/internal/jobs"
	"github.com/Khushiyant/nibtara/internal/logger"
	"github.com/Khushiyant/nibtara/internal/sessioncache"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := db.MigrateUp(cfg.DBURL, log); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("cannot connect to postgres")
	}
	defer dbPool.Close()

	repository := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)

	opts := []service.Option{service.WithLogger(log)}
	checks := []handler.HealthCheck{{Name: "postgres", Check: dbPool.Ping}}

	if cfg.RedisAddr != "" {
		client, err := sessioncache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("cannot connect to redis")
		}
		defer client.Close()

		ttl := time.Duration(cfg.SessionCacheTTLSeconds) * time.Second
		opts = append(opts, service.WithSessionCache(sessioncache.New(client), ttl))
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.Dial(ctx, cfg.AMQPURL, cfg.EventsExchange, 10, log)
		if err != nil {
			log.WithError(err).Fatal("cannot connect to message broker")
		}
		defer publisher.Close()
		opts = append(opts, service.WithEventPublisher(publisher))
	}

	authService := service.NewAuthService(repository, repository, tokenService, opts...)
	registrationService := service.NewRegistrationService(repository, authService, cfg.BcryptCost, opts...)
	listingService := service.NewListingService(repository)

	var embedder advisory.Embedder = advisory.Disabled{}
	if cfg.EmbeddingURL != "" {
		embedder = advisory.NewHTTPEmbedder(cfg.EmbeddingURL, cfg.EmbeddingToken, time.Duration(cfg.EmbeddingTimeoutSeconds)*time.Second)
	}

	if cfg.TokenFlushSchedule != "" {
		if _, err := jobs.StartTokenFlushJob(ctx, cfg.TokenFlushSchedule, jobs.NewTokenFlusher(repository, log)); err != nil {
			log.WithError(err).Fatal("cannot schedule token flush")
		}
	}

	authHandler := handler.NewAuthHandler(authService, registrationService, listingService, embedder)
	limiter := handler.NewRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst, log)

	app := handler.NewApp(log)
	handler.RegisterRoutes(app, authHandler, limiter, checks...)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown incomplete")
		}
	}()

	log.WithField("port", cfg.Port).Info("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("server stopped")
	}
}
