// One-shot rebuild of the monthly summary tab from the ledger tabs. Useful
// after hand-editing the spreadsheet or when the summary drifts.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finbot/internal/aggregator"
	"finbot/internal/config"
	applog "finbot/internal/log"
	"finbot/internal/sheets"
	gsheet "finbot/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	applog.Setup()
	logger := applog.ForComponent(applog.ComponentApp)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.DataBackend != "sheets" {
		logger.Error("Rebuild requires the sheets backend")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cli, err := gsheet.New(ctx, cfg.SpreadsheetID)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}

	tabs := sheets.Tabs{
		Expenses: cfg.ExpensesTab,
		Income:   cfg.IncomeTab,
		Summary:  cfg.SummaryTab,
	}

	logger.Info("Rebuilding monthly summary", applog.FieldTab, tabs.Summary)
	if err := aggregator.New(cli, tabs).Rebuild(ctx); err != nil {
		logger.Error("Rebuild failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Rebuild complete")
}
