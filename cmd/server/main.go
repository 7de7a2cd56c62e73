// Command server runs the accounts API: session-based authentication over
// MongoDB with Redis-assisted last-seen tracking and a periodic expired
// session reaper.
//
// @title        Accounts API
// @version      1.0
// @description  Session-based authentication and account provisioning service.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewhub/accounts-system/internal/api"
	"github.com/crewhub/accounts-system/internal/core/service"
	"github.com/crewhub/accounts-system/internal/infrastructure/config"
	mongodb "github.com/crewhub/accounts-system/internal/infrastructure/db/mongo"
	redisdb "github.com/crewhub/accounts-system/internal/infrastructure/db/redis"
	"github.com/crewhub/accounts-system/internal/infrastructure/reaper"
	"github.com/crewhub/accounts-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Secrets.JWT == "" || cfg.Secrets.PasswordSalt == "" {
		log.Fatal().Msg("JWT_SECRET and PASSWORD_SALT must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("session index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Services ---
	authService := service.NewAuthService(
		userRepo, sessionRepo,
		service.NewJWTCodec(cfg.Secrets.JWT),
		redisdb.NewTouchThrottle(rdb, cfg.Session.TouchWindow, log),
		cfg.Secrets.PasswordSalt,
		cfg.Session.TTL, cfg.Session.ExtendedTTL,
		log,
	)
	userService := service.NewUserService(userRepo, cfg.Secrets.PasswordSalt, log)

	// --- Expired session reaper ---
	reaper.New(authService, cfg.Session.SweepInterval, log).Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:   authService,
		Users:  userService,
		Mongo:  db,
		Redis:  rdb,
		Secure: cfg.Secure,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
