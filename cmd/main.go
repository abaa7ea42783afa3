package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/eaglebank/customer-account-service/internal/command"
	"github.com/eaglebank/customer-account-service/internal/config"
	"github.com/eaglebank/customer-account-service/internal/events"
	"github.com/eaglebank/customer-account-service/internal/handler"
	"github.com/eaglebank/customer-account-service/internal/logger"
	"github.com/eaglebank/customer-account-service/internal/query"
	redisClient "github.com/eaglebank/customer-account-service/internal/redis"
	"github.com/eaglebank/customer-account-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithHandler(logger.ParseHandler(cfg.LogHandler)),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("account service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Database connection (system of record)
	db, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}

	clock := clockwork.NewRealClock()

	var store repository.AccountStore = repository.NewAccountRepository(db, cfg.DatabaseDriver)
	var publisher command.EventPublisher = events.NopPublisher{}

	// Redis is optional: read cache + event streaming
	if cfg.RedisAddr != "" {
		redis, err := redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redis.Close()

		store = repository.NewCachedAccountRepository(store, redis.Client, cfg.CacheTTL, log)
		publisher = events.NewPublisher(redis.Client, clock)
		log.Info("redis enabled", "addr", cfg.RedisAddr, "cacheTtl", cfg.CacheTTL)
	} else {
		log.Info("redis disabled, running without cache or events")
	}

	// --- CQRS wiring ---
	commandSvc := command.NewAccountCommandService(store, publisher, clock, log)
	querySvc := query.NewAccountQueryService(store)

	if cfg.SeedSampleData {
		if err := commandSvc.InitializeSampleData(ctx); err != nil {
			return err
		}
	}

	gin.SetMode(cfg.GinMode)
	router := handler.NewRouter(handler.NewAccountHandler(commandSvc, querySvc, log), log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("account service starting", "port", cfg.Port, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
