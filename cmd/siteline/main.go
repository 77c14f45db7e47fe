package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/siteline-pm/siteline/internal/app"
	"github.com/siteline-pm/siteline/internal/auth"
	"github.com/siteline-pm/siteline/internal/contracts"
	"github.com/siteline-pm/siteline/internal/documents"
	"github.com/siteline-pm/siteline/internal/notifications"
	"github.com/siteline-pm/siteline/internal/platform/cache"
	"github.com/siteline-pm/siteline/internal/platform/db"
	"github.com/siteline-pm/siteline/internal/projects"
	"github.com/siteline-pm/siteline/internal/rbac"
	"github.com/siteline-pm/siteline/internal/shared"
	"github.com/siteline-pm/siteline/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authService := auth.NewService(auth.NewPGRepository(pool), tokens)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Tokens: tokens, Logger: logger}

	registry := rbac.DefaultRegistry()
	rbacService := rbac.NewService(rbac.NewRepository(pool), registry).WithAudit(shared.NewAuditLogger(pool))
	rbacMiddleware := rbac.Middleware{Loader: rbac.NewStore(pool), Logger: logger}
	rbacHandler := rbac.NewHandler(logger, rbacService, rbacMiddleware)

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	projectsHandler := projects.NewHandler(logger, projects.NewService(projects.NewRepository(pool)), rbacMiddleware)
	contractsHandler := contracts.NewHandler(logger, contracts.NewService(contracts.NewRepository(pool)), rbacMiddleware)
	documentsHandler := documents.NewHandler(logger, documents.NewService(documents.NewRepository(pool)), rbacMiddleware)
	notificationsHandler := notifications.NewHandler(logger, notifications.NewService(notifications.NewRepository(pool), jobsClient), rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		AuthHandler:          authHandler,
		AuthMiddleware:       authMiddleware,
		RBACHandler:          rbacHandler,
		ProjectsHandler:      projectsHandler,
		ContractsHandler:     contractsHandler,
		DocumentsHandler:     documentsHandler,
		NotificationsHandler: notificationsHandler,
		Pool:                 pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
