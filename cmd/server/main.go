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

	"github.com/labstack/echo/v4"

	_ "todoapi/docs" // swagger docs

	"todoapi/internal/cache"
	"todoapi/internal/config"
	"todoapi/internal/db"
	"todoapi/internal/handler"
	"todoapi/internal/metrics"
	"todoapi/internal/repository"
	"todoapi/internal/router"
	"todoapi/internal/service"
)

// @title Todo API
// @version 1.0
// @description Todo list backend with registration, login and per-user todo items.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// store is the lifecycle surface shared by the Mongo and MySQL connections.
type store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func run(ctx context.Context, cfg *config.Config) error {
	st, userRepo, todoRepo, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			slog.Warn("close store", "error", err)
		}
	}()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		slog.Info("REDIS_ADDR not set, list cache disabled")
	}

	// Initialize services
	accountService := service.NewAccountService(userRepo)
	todoService := service.NewTodoService(todoRepo, cacheClient, cfg.ListCacheTTL)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService)
	todoHandler := handler.NewTodoHandler(todoService)
	healthHandler := handler.NewHealthHandler(st)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, metrics.New(), accountHandler, todoHandler, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		slog.Info("server is running", "addr", addr, "store", cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server start: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, repository.UserRepository, repository.TodoRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		mongoDB, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database init: %w", err)
		}
		if err := repository.EnsureMongoIndexes(ctx, mongoDB.Database()); err != nil {
			_ = mongoDB.Close(ctx)
			return nil, nil, nil, err
		}
		slog.Info("MongoDB connected successfully", "database", mongoDB.Database().Name())
		return mongoDB,
			repository.NewMongoUserRepository(mongoDB.Database()),
			repository.NewMongoTodoRepository(mongoDB.Database()),
			nil
	case config.DriverMySQL:
		mysqlDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database init: %w", err)
		}
		if err := mysqlDB.AutoMigrate(); err != nil {
			_ = mysqlDB.Close(ctx)
			return nil, nil, nil, fmt.Errorf("auto-migrate: %w", err)
		}
		slog.Info("MySQL connected successfully")
		return mysqlDB,
			repository.NewUserRepository(mysqlDB.DB),
			repository.NewTodoRepository(mysqlDB.DB),
			nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
