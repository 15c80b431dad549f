package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP
	Port string

	// Telegram
	TelegramToken string
	WebhookURL    string // public base URL for webhook mode
	WebhookListen string // local listen address for webhook mode

	// Ledger backend
	DataBackend   string // "sheets" or "memory"
	SpreadsheetID string
	ExpensesTab   string
	IncomeTab     string
	SummaryTab    string

	// Local journal (empty path disables it)
	SQLiteDBPath string

	// AMQP events (empty URL disables them)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:    getEnv("TELEGRAM_WEBHOOK_URL", ""),
		WebhookListen: getEnv("TELEGRAM_WEBHOOK_LISTEN", ":8443"),

		DataBackend:   getEnv("DATA_BACKEND", "sheets"),
		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		ExpensesTab:   getEnv("EXPENSES_TAB", "Despesas"),
		IncomeTab:     getEnv("INCOME_TAB", "Receitas"),
		SummaryTab:    getEnv("SUMMARY_TAB", "Resumo Mensal"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finbot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transaction_events"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "sheets":
		if c.SpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
		}
	case "memory":
		// Nothing extra.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [sheets memory]", c.DataBackend))
	}

	for name, tab := range map[string]string{
		"EXPENSES_TAB": c.ExpensesTab,
		"INCOME_TAB":   c.IncomeTab,
		"SUMMARY_TAB":  c.SummaryTab,
	} {
		if strings.TrimSpace(tab) == "" {
			errs = append(errs, fmt.Sprintf("%s cannot be empty", name))
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
