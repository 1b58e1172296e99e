// Package db opens and migrates the PostgreSQL store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/epiwatch/backend/config"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

const (
	connectTimeout     = 5 * time.Second
	slowQueryThreshold = 500 * time.Millisecond
)

// Open connects to PostgreSQL, sizes the pool and waits for the first ping.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{Logger: queryLogger()})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pool, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := Ping(ctx, conn); err != nil {
		_ = pool.Close()
		return nil, err
	}

	slog.Info("Database connection established", "max_open_conns", cfg.MaxOpenConns)
	return conn, nil
}

// queryLogger routes slow queries and driver errors through slog. Missing
// rows are expected by the repositories and stay quiet.
func queryLogger() logger.Interface {
	return logger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Ping checks that the pool can still reach the server.
func Ping(ctx context.Context, conn *gorm.DB) error {
	pool, err := conn.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Migrate creates or alters the table of every persistence model.
func Migrate(conn *gorm.DB) error {
	models := model.All()
	tables := make([]any, 0, len(models))
	for _, m := range models {
		tables = append(tables, m)
	}
	if err := conn.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	slog.Info("Database migrated", "tables", len(tables))
	return nil
}

// Close releases the pool.
func Close(conn *gorm.DB) error {
	pool, err := conn.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	return pool.Close()
}
