// Summary rebuild worker. Consumes transaction events from AMQP and rebuilds
// the monthly summary tab, keeping it consistent even when rows are edited in
// the spreadsheet directly between events.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finbot/internal/aggregator"
	"finbot/internal/amqp"
	"finbot/internal/config"
	applog "finbot/internal/log"
	"finbot/internal/sheets"
	gsheet "finbot/internal/sheets/google"
	mem "finbot/internal/sheets/memory"
	"finbot/internal/worker"
)

func main() {
	_ = godotenv.Load()

	applog.Setup()
	logger := applog.ForComponent(applog.ComponentWorker)
	logger.Info("Starting summary worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	tabs := sheets.Tabs{
		Expenses: cfg.ExpensesTab,
		Income:   cfg.IncomeTab,
		Summary:  cfg.SummaryTab,
	}

	var store sheets.Store
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.New(context.Background(), cfg.SpreadsheetID)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		store = cli
	default:
		store = mem.New(tabs)
	}

	rebuildWorker := worker.NewRebuildWorker(aggregator.New(store, tabs))

	events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer events.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming transaction events", "queue", cfg.AMQPQueue)
	err = events.ConsumeTransactionRecorded(ctx, func(msg *amqp.TransactionRecordedMessage) error {
		return rebuildWorker.HandleEvent(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
