// Command api serves the EpiWatch reporting API and runs its background jobs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/epiwatch/backend/config"
	infracache "github.com/epiwatch/backend/internal/infra/cache"
	"github.com/epiwatch/backend/internal/infra/db"
	"github.com/epiwatch/backend/internal/infra/dependency"
)

const shutdownGrace = 10 * time.Second

func main() {
	// .env is optional outside development.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(); err != nil {
		slog.Error("EpiWatch API stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting EpiWatch API",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"timezone", cfg.Timeline.Location().String(),
	)

	conn, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			return err
		}
	}

	redisClient, err := infracache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	injector, err := dependency.NewInjector(cfg, conn, redisClient)
	if err != nil {
		return fmt.Errorf("wire dependencies: %w", err)
	}

	var jobs sync.WaitGroup
	for _, job := range injector.BackgroundJobs() {
		job := job
		jobs.Add(1)
		go func() {
			defer jobs.Done()
			job(ctx)
		}()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		jobs.Wait()
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	jobs.Wait()
	return nil
}
