// Package server wires the application together: storage, mail worker,
// HTTP surface, admin bootstrap, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/auth"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/httpapi"
	"github.com/whoestate/backend/internal/server/mailer"
	"github.com/whoestate/backend/internal/server/messages"
	"github.com/whoestate/backend/internal/server/properties"
	"github.com/whoestate/backend/internal/server/shared/db"
	"github.com/whoestate/backend/internal/server/trackviews"
	"github.com/whoestate/backend/internal/server/uploads"
	"github.com/whoestate/backend/internal/server/users"

	"github.com/whoestate/backend/internal/server/password"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.RepositoryManager
	mailWorker *mailer.Worker
	userSvc    *users.Service
	httpServer *httpapi.Server
	redis      *redis.Client
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser,
		cfg.SMTPPassword, cfg.MailFrom)
	mailWorker := mailer.NewWorker(sender, logger, cfg.MailQueueSize)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn(ctx, "redis unavailable, view counters degrade to SQL", "error", err)
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	hasher := password.NewBcryptHasher(0)

	authSvc := auth.NewService(manager.Conn(), manager.Users(), manager.ResetTokens(),
		hasher, mailWorker, logger, cfg)
	userSvc := users.NewService(manager.Users(), hasher, mailWorker, logger, cfg)
	propertySvc := properties.NewService(manager.Properties(), logger)
	messageSvc := messages.NewService(manager.Messages(), mailWorker, logger, cfg)

	var counter trackviews.Counter
	if redisClient != nil {
		counter = redisClient
	}
	trackViewSvc := trackviews.NewService(manager.TrackViews(), counter, logger)
	uploadSvc := uploads.NewService(cfg)

	httpServer := httpapi.NewServer(authSvc, userSvc, propertySvc, messageSvc,
		manager.Intakes(), manager.FeatureOptions(), trackViewSvc, uploadSvc,
		logger, cfg)

	return &App{
		config:     cfg,
		logger:     logger,
		manager:    manager,
		mailWorker: mailWorker,
		userSvc:    userSvc,
		httpServer: httpServer,
		redis:      redisClient,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.mailWorker.Run(ctx)
	}()

	if err := app.userSvc.EnsureAdmin(ctx); err != nil {
		app.logger.Error(ctx, "admin bootstrap failed", "error", err)
		cancelFunc()
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.httpServer.Router(),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()
	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	wg.Wait()

	if app.redis != nil {
		_ = app.redis.Close()
	}
	if err := app.manager.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	app.logger.Info(shutdownCtx, "app stopped")
}
