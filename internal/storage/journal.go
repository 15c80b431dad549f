// Package storage keeps a local SQLite journal of every transaction the
// bot persisted. The spreadsheet remains the source of truth; the journal
// only feeds the HTTP read API and survives spreadsheet outages as an
// audit trail.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finbot/internal/core"
	"finbot/internal/log"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Entry is one journal row as served by the read API.
type Entry struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Type        string `json:"type"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"` // signed
	Category    string `json:"category"`
}

// MonthTotals mirrors one summary row of the spreadsheet.
type MonthTotals struct {
	IncomeCents  int64
	ExpenseCents int64 // absolute value
}

func (m MonthTotals) BalanceCents() int64 {
	return m.IncomeCents - m.ExpenseCents
}

func NewJournal(dbPath string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Insert records one persisted transaction with its signed amount.
func (j *Journal) Insert(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO transactions (tx_date, type, description, amount_cents, category)
		 VALUES (?, ?, ?, ?, ?)`,
		tx.Date.Format("2006-01-02"),
		string(tx.Type),
		tx.Description,
		tx.SignedCents(),
		tx.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction journaled",
		"id", id,
		log.FieldType, string(tx.Type),
		log.FieldAmountCents, tx.SignedCents())
	return id, nil
}

// ListRecent returns the newest entries, most recent first.
func (j *Journal) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, tx_date, type, description, amount_cents, category
		 FROM transactions
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Type, &e.Description, &e.AmountCents, &e.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// MonthTotals sums the month's journaled amounts, split by sign.
func (j *Journal) MonthTotals(ctx context.Context, key core.MonthKey) (MonthTotals, error) {
	prefix := fmt.Sprintf("%04d-%02d", key.Year, key.Month)
	row := j.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0)
		 FROM transactions
		 WHERE substr(tx_date, 1, 7) = ?`, prefix)

	var totals MonthTotals
	if err := row.Scan(&totals.IncomeCents, &totals.ExpenseCents); err != nil {
		return MonthTotals{}, fmt.Errorf("sum month totals: %w", err)
	}
	return totals, nil
}
