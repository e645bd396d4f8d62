package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gadget-shop-be/internal/config"
	"gadget-shop-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode(cfg),
	)
}

func sslMode(cfg *config.Config) string {
	if cfg.DBSSLMode == "" {
		return "disable"
	}
	return cfg.DBSSLMode
}

// NewDatabase opens the pool and pings it once.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

// InitDB never aborts startup: when the first ping fails the error is logged
// and the lazily-connecting pool is returned so routes recover once the
// database comes back.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err == nil {
		logger.L().Info("database connection established",
			zap.String("host", cfg.DBHost),
			zap.String("database", cfg.DBName),
		)
		return db
	}

	logger.L().Error("database unreachable at startup", zap.Error(err))

	lazy, openErr := sql.Open("postgres", buildDSN(cfg))
	if openErr != nil {
		logger.L().Error("failed to open database pool", zap.Error(openErr))
		return nil
	}
	return lazy
}
