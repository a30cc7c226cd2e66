package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"token-forge.backend/internal/config"
	pgstore "token-forge.backend/internal/infrastructure/datasources/postgres"
	sqlitestore "token-forge.backend/internal/infrastructure/datasources/sqlite"
	"token-forge.backend/internal/infrastructure/repositories"
	"token-forge.backend/internal/interfaces/http/handlers"
	"token-forge.backend/internal/usecases"
	"token-forge.backend/pkg/logger"
	"token-forge.backend/pkg/metrics"
	"token-forge.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = openStore
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs idempotency replay, so the service runs without it.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(ctx, "Redis unavailable, idempotency disabled", zap.Error(err))
	} else if redis.Enabled() {
		logger.Info(ctx, "Redis initialized")
	}
	defer func() { _ = redis.Close() }()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		logger.Error(ctx, "Store not available, endpoints will return errors",
			zap.String("driver", cfg.Database.Driver()),
			zap.Error(err),
		)
	} else if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	blueprintRepo := repositories.NewBlueprintRepository(db)
	if db != nil {
		if err := blueprintRepo.Migrate(ctx); err != nil {
			logger.Warn(ctx, "Blueprint migration failed, retrying on first request", zap.Error(err))
		} else {
			logger.Info(ctx, "Store ready", zap.String("driver", cfg.Database.Driver()))
		}
	}

	m := metrics.New(cfg.Metrics.Namespace)

	blueprintUsecase := usecases.NewBlueprintUsecase(blueprintRepo, usecases.NewBlueprintValidator(), m)
	diagnosticsUsecase := usecases.NewDiagnosticsUsecase(blueprintRepo, cfg.Database)

	r := newRouter(cfg, routeDeps{
		tokenHandler: handlers.NewTokenHandler(blueprintUsecase),
		metaHandler:  handlers.NewMetaHandler(diagnosticsUsecase),
		metrics:      m,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Token Forge Backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("health", fmt.Sprintf("http://localhost:%s/health", cfg.Server.Port)),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- runServer(srv) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// openStore opens Postgres when a connection string is configured and the embedded
// SQLite store otherwise. An unreachable Postgres server is not an error here.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver() == config.DriverSQLite {
		return sqlitestore.Open(cfg)
	}

	sqlDB, err := pgstore.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := pgstore.Ping(ctx, sqlDB, cfg); err != nil {
		logger.Warn(ctx, "Database not reachable yet", zap.Error(err))
	}

	db, err := pgstore.OpenGorm(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}
