// AngelaMos | 2026
// main.go

package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/carterperez-dev/templates/go-crud-api/internal/config"
	"github.com/carterperez-dev/templates/go-crud-api/internal/core"
	"github.com/carterperez-dev/templates/go-crud-api/internal/permission"
)

//go:embed schema.sql
var schema string

func main() {
	configPath := flag.String("config", "", "path to config file")
	withSchema := flag.Bool("schema", false, "create missing tables before seeding")
	flag.Parse()

	if err := run(*configPath, *withSchema); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, withSchema bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	if withSchema {
		if _, err := db.DB.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		slog.Info("schema applied")
	}

	svc := permission.NewService(permission.NewRepository(db.DB))
	if err := svc.Seed(ctx, permission.Default); err != nil {
		return err
	}

	slog.Info("permissions seeded", "count", len(permission.Default))
	return nil
}
