// Package ledger persists transactions as rows of the spreadsheet ledger.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/sheets"
)

// Writer appends one ledger row per transaction to the tab matching its
// type, in the column order [Data, Descrição, Valor, Categoria].
type Writer struct {
	store sheets.RowAppender
	tabs  sheets.Tabs
}

func NewWriter(store sheets.RowAppender, tabs sheets.Tabs) *Writer {
	return &Writer{store: store, tabs: tabs}
}

// Append validates and writes the transaction. The amount is stored signed:
// positive for income, negative for expense.
func (w *Writer) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("transaction date not set")
	}

	tab := w.tabs.ForType(tx.Type)
	row := []any{
		tx.Date.Format(core.DateLayout),
		tx.Description,
		float64(tx.SignedCents()) / 100.0,
		tx.Category,
	}
	if err := w.store.AppendRow(ctx, tab, row); err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}

	slog.InfoContext(ctx, "Ledger row appended",
		log.FieldTab, tab,
		log.FieldType, string(tx.Type),
		log.FieldAmountCents, tx.SignedCents(),
		log.FieldCategory, tx.Category)
	return nil
}
