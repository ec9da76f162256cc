package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Skotchmaster/fabric_billing/internal/config"
	"github.com/Skotchmaster/fabric_billing/internal/console"
	"github.com/Skotchmaster/fabric_billing/internal/events"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/internal/service"
	pkgdb "github.com/Skotchmaster/fabric_billing/pkg/db"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	store := repo.New(db)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("migrate_failed", "error", err)
		return
	}

	catalog := &service.CatalogService{Repo: store, AllowNegativeStock: cfg.AllowNegativeStock}
	if cfg.SeedCatalog {
		if _, err := catalog.SeedIfEmpty(ctx); err != nil {
			logger.Error("seed_failed", "error", err)
			return
		}
	}

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Error("kafka_producer_failed", "error", err)
			return
		}
		pub = prod
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}()

	till := service.NewTill(
		catalog,
		&service.InvoiceService{Repo: store, Catalog: catalog},
		&service.LedgerService{Repo: store},
		pub,
	)

	if err := console.New(till, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Error("console_failed", "error", err)
	}
}
