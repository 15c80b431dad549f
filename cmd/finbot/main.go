package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"

	"finbot/internal/aggregator"
	"finbot/internal/amqp"
	"finbot/internal/bot"
	"finbot/internal/config"
	"finbot/internal/dialog"
	"finbot/internal/ledger"
	applog "finbot/internal/log"
	"finbot/internal/services"
	"finbot/internal/sheets"
	gsheet "finbot/internal/sheets/google"
	mem "finbot/internal/sheets/memory"
	"finbot/internal/storage"
	"finbot/internal/web"
)

func main() {
	// .env is for local development; in containers the vars come from the
	// environment and the file is absent.
	_ = godotenv.Load()

	applog.Setup()
	logger := applog.ForComponent(applog.ComponentApp)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is required")
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
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
	default:
		store = mem.New(tabs)
		logger.Info("Initialized in-memory backend")
	}

	writer := ledger.NewWriter(store, tabs)
	agg := aggregator.New(store, tabs)
	svc := services.NewRecordService(writer, agg)

	var (
		lister     web.TransactionLister
		summarizer web.MonthSummarizer
	)
	if cfg.SQLiteDBPath != "" {
		journal, err := storage.NewJournal(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open journal", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer journal.Close()
		svc = svc.WithJournal(journal)
		lister, summarizer = journal, journal
		logger.Info("Journal enabled", "path", cfg.SQLiteDBPath)
	}

	if cfg.AMQPURL != "" {
		events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Events are an enhancement; the bot still records without them.
			logger.Warn("Failed to connect to AMQP, events disabled", applog.FieldError, err)
		} else {
			defer events.Close()
			svc = svc.WithEvents(events)
			logger.Info("AMQP events enabled", "exchange", cfg.AMQPExchange)
		}
	}

	engine := dialog.NewEngine(svc)

	b, err := bot.New(cfg.TelegramToken, &tele.LongPoller{Timeout: 10 * time.Second}, engine)
	if err != nil {
		logger.Error("Failed to create Telegram bot", applog.FieldError, err)
		os.Exit(1)
	}

	srv := web.NewServer(":"+cfg.Port, lister, summarizer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting Telegram bot", "backend", cfg.DataBackend)
		b.Start()
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		b.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", applog.FieldError, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Exited with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Stopped gracefully")
}
