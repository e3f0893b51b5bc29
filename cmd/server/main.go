package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uqm-starseed/internal/galaxycache"
	"uqm-starseed/internal/middleware"
	"uqm-starseed/internal/savestore"
	"uqm-starseed/internal/server"
	"uqm-starseed/internal/shared/config"
	"uqm-starseed/internal/shared/database"
	"uqm-starseed/internal/shared/logger"
	"uqm-starseed/internal/shared/redis"
	"uqm-starseed/internal/starmap"
	"uqm-starseed/migrations"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init()
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(migrations.FS); err != nil {
		return err
	}

	rdb, err := redis.Connect()
	if err != nil {
		log.Warn("Redis unavailable, previews cached in memory", "error", err)
		rdb = nil
	}
	defer rdb.Close()

	seeder, err := starmap.NewService(cfg.Seeding, slog.Default())
	if err != nil {
		return err
	}
	previews := galaxycache.New(rdb, seeder, cfg.Redis.CacheTTL, slog.Default())
	saves := savestore.NewService(savestore.NewRepository(db, slog.Default()), cfg.Persistence, slog.Default())

	mux := server.NewRoutes(db, rdb, previews, seeder, saves, slog.Default()).Setup()

	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	cors := middleware.NewCORS(cfg.Frontend)
	handler := cors.Middleware(limiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starseed server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"seed_type", cfg.Seeding.SeedType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
