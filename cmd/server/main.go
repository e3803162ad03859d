package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ValiCoder/courseboard/internal/api"
	"github.com/ValiCoder/courseboard/internal/api/middleware"
	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/service"
	"github.com/ValiCoder/courseboard/internal/infrastructure/config"
	mongodb "github.com/ValiCoder/courseboard/internal/infrastructure/db/mongo"
	redisdb "github.com/ValiCoder/courseboard/internal/infrastructure/db/redis"
	"github.com/ValiCoder/courseboard/internal/infrastructure/queue"
	"github.com/ValiCoder/courseboard/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}
	if err := courseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("course index bootstrap failed")
	}

	sessions := redisdb.NewSessionStore(rdb, domain.SessionTTL)

	// --- Background cleanup worker ---
	janitor := queue.NewJanitor(courseRepo, log)
	janitor.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessions, log)
	userService := service.NewUserService(userRepo, courseRepo, janitor, log)
	courseService := service.NewCourseService(courseRepo, userRepo, log)

	// --- Router & HTTP server ---
	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Users:    userService,
		Courses:  courseService,
		UserRepo: userRepo,
		Sessions: sessions,
		Codec:    middleware.NewCookieCodec(cfg.SessionSecret),
		Mongo:    db,
		Redis:    rdb,
		PagesDir: cfg.PagesDir,
		Log:      log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
