// Package main implements the entry point for the spending API server, which
// lets users sign up, sign in, and manage their daily spending records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/phrazzld/spending-api/internal/platform/docstore"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "",
		fmt.Sprintf("run a migration command and exit (%s)", strings.Join(docstore.MigrationCommands, ", ")))
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		slog.Error("Server exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, then either executes a migration command or
// serves HTTP until ctx is cancelled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		if !slices.Contains(docstore.MigrationCommands, migrateCmd) {
			return fmt.Errorf("unknown migration command %q", migrateCmd)
		}
		return handleMigrations(ctx, cfg, migrateCmd, logger)
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.Run(ctx)
}
