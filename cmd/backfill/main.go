package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/doug-fsg/controlei/internal/application/backfill"
	"github.com/doug-fsg/controlei/internal/infrastructure/config"
	"github.com/doug-fsg/controlei/internal/infrastructure/logger"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// backfill migrates legacy single-user data into the organization model:
// every user without a membership gets a personal organization, and their
// orphaned rows are re-parented under it.
func main() {
	var (
		dryRun   bool
		logLevel string
	)
	flag.BoolVar(&dryRun, "dry-run", false, "Report what would be migrated without writing")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// The flag wins over the config file so an operator can force a
	// rehearsal run without editing config.
	if dryRun {
		cfg.Backfill.DryRun = true
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := persistence.NewGormBackfillStore(db.DB)
	migrator := backfill.NewMigrator(store, backfill.Config{DryRun: cfg.Backfill.DryRun}, log)

	report, err := migrator.Run(ctx)
	if err != nil {
		log.Fatal("Backfill failed", zap.Error(err))
	}

	fmt.Printf("Backfill complete: %d migrated, %d skipped, %d failed\n",
		report.Migrated, report.Skipped, report.Failed)
	if report.Failed > 0 {
		os.Exit(1)
	}
}
