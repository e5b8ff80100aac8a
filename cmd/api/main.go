package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/internal/catalog"
	"bookreview/internal/config"
	"bookreview/internal/events"
	"bookreview/internal/httpx"
	"bookreview/internal/platform/googlebooks"
	"bookreview/internal/platform/logger"
	"bookreview/internal/review"
	"bookreview/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init("bookreview", cfg.LogLevel)

	sessionStore, closeStore := mustOpenSessionStore(cfg)
	defer closeStore()

	sessions := session.NewManager(sessionStore, cfg.SessionTTL)

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	cleanupDone := make(chan struct{})
	go func() {
		defer close(cleanupDone)
		if cleaner, ok := sessionStore.(session.ExpiryCleaner); ok {
			session.RunExpiryCleanup(cleanupCtx, cleaner, cfg.SessionTTL)
		}
	}()

	reviewStore := review.NewStore()
	if cfg.ClearReviewsOnLogout {
		sessions.OnLogout(func(context.Context, session.User) { reviewStore.Clear() })
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("review events enabled")
	}
	relay := events.NewRelay(publisher, 0)
	detach := relay.Attach(reviewStore)

	relayCtx, stopRelay := context.WithCancel(context.Background())
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relay.Run(relayCtx)
	}()

	client := googlebooks.NewClient(googlebooks.Config{
		BaseURL:   cfg.CatalogBaseURL,
		APIKey:    cfg.CatalogAPIKey,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.CatalogTimeout,
		RPS:       cfg.CatalogRPS,
	})

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	handler := newRouter(routerDeps{
		sessions:     sessions,
		catalog:      catalog.NewService(client),
		reviews:      review.NewService(reviewStore),
		rateLimiter:  rateLimiter,
		corsOrigins:  cfg.CORSAllowedOrigins,
		enableHSTS:   cfg.EnableHSTS,
		cookieSecure: cfg.CookieSecure,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.CatalogTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Str("session_backend", cfg.SessionBackend).
			Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	stopCleanup()
	<-cleanupDone

	detach()
	stopRelay()
	<-relayDone
	if err := publisher.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close event publisher")
	}

	logger.Info().Msg("stopped gracefully")
}

func mustOpenSessionStore(cfg config.Config) (session.Store, func()) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("cannot ping redis")
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("redis connection OK")
		return session.NewRedisStore(client), func() { _ = client.Close() }

	case config.SessionBackendPostgres:
		pool := mustOpenDB(cfg.DatabaseDSN)
		return session.NewPostgresStore(pool, 3*time.Second), pool.Close

	default:
		return session.NewMemoryStore(), func() {}
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Fatal().Err(err).Str("dsn", config.RedactDSN(dsn)).Msg("cannot ping database")
	}
	logger.Info().Msg("database connection OK")
	return pool
}
