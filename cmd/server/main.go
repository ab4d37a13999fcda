package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tapcard/internal/config"
	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/handler"
	"github.com/tapcard/internal/logging"
	"github.com/tapcard/internal/router"
	"github.com/tapcard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if cfg.SessionSecretGenerated {
		logger.Warn("SESSION_SECRET is not set, using a random per-process secret; flash messages will not survive restarts or span instances")
	}

	if err := db.Init(cfg.DBDriver, cfg.DatabaseDSN); err != nil {
		logger.Fatal("failed to initialize database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	opts := handler.Options{
		PublicBaseURL:    cfg.PublicBaseURL,
		PhoneRegion:      cfg.PhoneRegion,
		AnalyticsSalt:    cfg.AnalyticsSalt,
		AnalyticsTimeout: cfg.AnalyticsTimeout,
		Logger:           logger,
	}

	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, card cache will fall back to the database", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()

		opts.Cache = service.NewRedisBundleCache(rdb, cfg.CardCacheTTL)
	}

	api := handler.NewAPI(db.DB, opts)
	if rdb != nil {
		api.AddHealthCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	r, err := router.SetupRouter(api, router.Options{
		SessionSecret:  cfg.SessionSecret,
		VCardRateLimit: cfg.VCardRateLimit,
	})
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("card server listening", zap.String("addr", cfg.ListenAddr), zap.String("driver", cfg.DBDriver), zap.Bool("cache", cfg.CacheEnabled()))
		serverErr <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	api.Wait()
}
