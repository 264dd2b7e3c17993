package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agriconnect/marketplace-api/internal/api"
	"github.com/agriconnect/marketplace-api/internal/core/service"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/config"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/db/postgres"
	redisdb "github.com/agriconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/agriconnect/marketplace-api/internal/infrastructure/storage"
	"github.com/agriconnect/marketplace-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Postgres ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// --- Redis (optional: the server runs without the plan cache) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, recommendation cache disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// --- Upload storage ---
	images, err := storage.NewImageStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload storage")
	}

	// --- Super admin bootstrap ---
	userRepo := postgres.NewUserRepository(db)
	if err := service.EnsureSuperAdmin(ctx, userRepo,
		cfg.SuperAdmin.Email, cfg.SuperAdmin.Password, cfg.SuperAdmin.FullName, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed super admin")
	}

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, images, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
