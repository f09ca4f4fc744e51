package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lao-sha/fissionmall/cmd"
	"github.com/lao-sha/fissionmall/internal/adapters/out/bolt"
	"github.com/lao-sha/fissionmall/internal/adapters/out/events"
	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/adapters/out/postgres"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lmittmann/tint"
)

func main() {
	// .env is optional; the process environment wins.
	_ = godotenv.Load(".env")
	config := cmd.ConfigFromLookup(os.Getenv)

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      config.LogLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	backend, closer, err := openBackend(ctx, config)
	if err != nil {
		log.Fatalf("failed to open %s backend: %v", config.StoreBackend, err)
	}
	defer closer.Close()

	// The clock continues from wall time so that readings keep increasing
	// across restarts of a persistent backend.
	clock := memory.NewClock(kernel.Timestamp(time.Now().UnixMilli()))

	app, err := cmd.NewCompositionRoot(config, backend, events.NewLogPublisher(logger), clock, logger)
	if err != nil {
		log.Fatalf("failed to compose application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, config.HTTPPort, logger)
}

func openBackend(ctx context.Context, config cmd.Config) (records.Backend, io.Closer, error) {
	switch config.StoreBackend {
	case cmd.BackendMemory:
		return memory.NewStore(), closerFunc(func() error { return nil }), nil
	case cmd.BackendBolt:
		store, err := bolt.Open(config.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case cmd.BackendPostgres:
		db, err := postgres.Open(postgres.DSN(config.DBHost, config.DBPort, config.DBUser,
			config.DBPassword, config.DBName, config.DBSslMode))
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return store, sqlDB, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", config.StoreBackend)
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateServer().Register(e.Group("/api/v1"))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("http server started", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
