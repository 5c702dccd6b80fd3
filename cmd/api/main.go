// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Vidora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis (optional; the view ledger runs without it).
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start the view reconciler and the HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidora/internal/api"
	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/config"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/migration"
	pgstore "github.com/taibuivan/vidora/internal/platform/postgres"
	redisstore "github.com/taibuivan/vidora/internal/platform/redis"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/social/comment"
	"github.com/taibuivan/vidora/internal/social/like"
	"github.com/taibuivan/vidora/internal/social/subscription"
	"github.com/taibuivan/vidora/internal/social/tweet"
	"github.com/taibuivan/vidora/internal/social/view"
	"github.com/taibuivan/vidora/internal/users/channel"
	"github.com/taibuivan/vidora/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	// The seen-cache is an accelerator. Startup continues without it.
	var seenCache view.SeenCache
	var rdb *goredis.Client
	if client, cerr := redisstore.NewClient(startupCtx, cfg.RedisURL, log); cerr != nil {
		log.Warn("redis_unavailable_view_cache_disabled", slog.Any("error", cerr))
	} else {
		rdb = client
		seenCache = view.NewRedisSeenCache(rdb, view.DefaultCacheConfig(cfg.ViewSeenTTL), log)
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Viewer Identity ────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	sessionDigester, err := sec.NewSessionDigester(cfg.SessionSecret)
	must(log, err, "initialize session digester")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	profiles := profile.NewPostgresRepository(pool)

	videoRepository := video.NewPostgresRepository(pool)
	commentRepository := comment.NewPostgresRepository(pool)
	tweetRepository := tweet.NewPostgresRepository(pool)

	likeService := like.NewService(like.NewPostgresRepository(pool), like.Targets{
		like.KindVideo:   videoRepository.Exists,
		like.KindComment: commentRepository.Exists,
		like.KindTweet:   tweetRepository.Exists,
	})

	subscriptionService := subscription.NewService(subscription.NewPostgresRepository(pool), profiles.Exists)

	videoService := video.NewService(videoRepository, profiles, likeService.View(like.KindVideo))
	commentService := comment.NewService(commentRepository, profiles, likeService.View(like.KindComment), videoRepository.Exists)
	tweetService := tweet.NewService(tweetRepository, profiles, likeService.View(like.KindTweet), profiles.Exists)
	channelService := channel.NewService(channel.NewPostgresRepository(pool), subscriptionService.ChannelView(), profiles.Exists)

	viewService := view.NewService(view.NewPostgresRepository(pool), seenCache, videoRepository.Exists)

	videoHandler := video.NewHandler(videoService)

	// ── 9. Background Work ────────────────────────────────────────────────
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	go view.NewReconciler(viewService, cfg.ViewReconcileInterval, log).Run(appCtx)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Like:         like.NewHandler(likeService, videoHandler.LikedVideos),
		View:         view.NewHandler(viewService),
		Subscription: subscription.NewHandler(subscriptionService),
		Video:        videoHandler,
		Comment:      comment.NewHandler(commentService),
		Tweet:        tweet.NewHandler(tweetService),
		Channel:      channel.NewHandler(channelService),
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, sessionDigester, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Stop background work before draining requests.
	appCancel()

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
