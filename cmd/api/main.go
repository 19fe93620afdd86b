// @title                       CMS API
// @version                     1.0
// @description                 Headless CMS API: posts, users and media with per-collection access control.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
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
	"github.com/rs/zerolog"

	_ "github.com/contentdesk/cms/docs"
	"github.com/contentdesk/cms/internal/api"
	"github.com/contentdesk/cms/internal/api/handler"
	"github.com/contentdesk/cms/internal/core/service"
	mongodb "github.com/contentdesk/cms/internal/infrastructure/db/mongo"
	redisdb "github.com/contentdesk/cms/internal/infrastructure/db/redis"
	"github.com/contentdesk/cms/internal/infrastructure/queue"
	"github.com/contentdesk/cms/internal/pkg/config"
	"github.com/contentdesk/cms/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; the real environment always wins.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "cms",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	postRepo := mongodb.NewPostRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	mediaRepo := mongodb.NewMediaRepository(db)
	if err := mongodb.EnsureIndexes(ctx, postRepo, userRepo); err != nil {
		return err
	}

	// The dispatcher outlives requests and is drained after the HTTP server
	// has stopped, so it gets its own context.
	dispatcher := queue.NewViewDispatcher(cfg.Views.Workers, cfg.Views.Buffer, postRepo, logger.Component("view_dispatcher"))
	dispatcher.Start(context.Background())

	// --- Services ---
	views := service.NewViewCounter(dispatcher, cfg.Views.AdminPath, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL,
		service.WithLoginLimiter(redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.LockTime)),
		service.WithTokenRevoker(redisdb.NewTokenRevoker(rdb)),
		service.WithLogger(logger.Component("auth")),
	)

	e := api.NewRouter(api.Services{
		Auth:  authService,
		Posts: service.NewPostService(postRepo, views, logger.Component("posts")),
		Users: service.NewUserService(userRepo, log),
		Media: service.NewMediaService(mediaRepo, log),
	}, api.Options{
		Logger:       log,
		SecureCookie: cfg.Env == "production",
		Readiness: []handler.DependencyCheck{
			{Name: "mongodb", Check: mongodb.Ping(db)},
			{Name: "redis", Check: redisdb.Ping(rdb)},
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http server forced to shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("view dispatcher did not drain in time")
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
