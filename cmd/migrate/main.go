package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"gadget-shop-be/internal/config"
	"gadget-shop-be/internal/db"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

var allowedModes = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"down":      true,
	"redo":      true,
	"reset":     true,
	"status":    true,
	"version":   true,
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, up-by-one, down, redo, reset, status or version")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close()

	if err := run(context.Background(), database, *mode); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func run(ctx context.Context, database *sql.DB, mode string) error {
	if !allowedModes[mode] {
		return fmt.Errorf("unknown mode: %s", mode)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zapGooseLogger{log: logger.L().With(zap.String("component", "migrations"))})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.RunContext(ctx, mode, database, ".")
}

// zapGooseLogger routes goose output through zap. Fatalf only logs so the
// caller decides how to exit.
type zapGooseLogger struct {
	log *zap.Logger
}

func (l zapGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l zapGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}
