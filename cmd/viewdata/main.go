package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Skotchmaster/fabric_billing/internal/config"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/internal/report"
	pkgdb "github.com/Skotchmaster/fabric_billing/pkg/db"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-viewdata")
	ctx := logging.IntoContext(context.Background(), logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error accessing database: %v\n", err)
		os.Exit(1)
	}
	defer pkgdb.Close(db)

	if err := report.Write(ctx, os.Stdout, repo.New(db)); err != nil {
		logger.Error("report_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error accessing database: %v\n", err)
		os.Exit(1)
	}
}
