package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/core/services"
	"github.com/SscSPs/shopledger/internal/platform/config"
	"github.com/SscSPs/shopledger/internal/platform/observability"
	"github.com/SscSPs/shopledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/shopledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/shopledger/pkg/database"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopledger",
	Short: "Customer ledger and payment allocation service",
	Long: `shopledger keeps a running balance per customer, posts invoices, deliveries,
payments and refunds to an append-only journal, and reports aging and totals.`,
	SilenceUsage: true,
}

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  portsrepo.Store
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

// bootstrap loads config, migrates when asked to and RUN_MIGRATIONS allows, and opens the configured store.
func bootstrap(ctx context.Context, migrate bool) (*app, error) {
	logger := newLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if migrate && cfg.RunMigrations {
		if err := runMigrations(cfg, logger); err != nil {
			return nil, err
		}
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Store opened", slog.String("driver", cfg.StoreDriver))

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("driver", cfg.StoreDriver))
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		return database.MigrateSQLite(cfg.SQLitePath, logger)
	default:
		return database.MigratePostgres(cfg.DatabaseURL, logger)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (portsrepo.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	default:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		return pgsql.NewStore(pool), nil
	}
}

// serviceOptions turns configuration into service options, warning when a
// ledger bound has been relaxed.
func (a *app) serviceOptions(metrics *observability.Metrics) []services.ServiceOption {
	policy := services.LedgerPolicy{
		StrictAllocation: a.cfg.StrictAllocation,
		StrictRefund:     a.cfg.StrictRefund,
	}
	if !policy.StrictAllocation {
		a.logger.Warn("Strict allocation disabled: allocations may exceed the payment amount")
	}
	if !policy.StrictRefund {
		a.logger.Warn("Strict refund disabled: refunds are bounded by the payment amount only")
	}
	return []services.ServiceOption{
		services.WithLedgerPolicy(policy),
		services.WithAgingBoundaries(a.cfg.AgingBoundaries),
		services.WithMetrics(metrics),
	}
}
