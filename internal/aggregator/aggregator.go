// Package aggregator recomputes the monthly summary tab from raw ledger
// rows. Both operations re-derive totals from source rows, so running them
// again on an unchanged ledger is a no-op.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/sheets"
)

type Aggregator struct {
	store sheets.Store
	tabs  sheets.Tabs
	now   func() time.Time
}

func New(store sheets.Store, tabs sheets.Tabs) *Aggregator {
	return &Aggregator{store: store, tabs: tabs, now: time.Now}
}

// WithClock overrides the clock. Tests pin it to a fixed instant.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

type monthTotals struct {
	incomeCents  int64
	expenseCents int64 // absolute value
}

// Rebuild recomputes the whole summary tab: reads every ledger row from
// both tabs, groups by month/year, clears the summary below the header and
// rewrites one row per month, most recent first, then applies currency
// formatting to the numeric columns.
func (a *Aggregator) Rebuild(ctx context.Context) error {
	totals := make(map[core.MonthKey]*monthTotals)

	for _, tab := range []string{a.tabs.Expenses, a.tabs.Income} {
		rows, err := a.store.ReadAllRows(ctx, tab)
		if err != nil {
			return fmt.Errorf("read ledger tab %s: %w", tab, err)
		}
		for i, row := range rows {
			if i == 0 || len(row) < 3 {
				continue
			}
			key, err := core.MonthKeyFromDate(row[0])
			if err != nil {
				continue
			}
			cents, ok := core.ParseCurrencyCents(row[2])
			if !ok {
				continue
			}
			mt := totals[key]
			if mt == nil {
				mt = &monthTotals{}
				totals[key] = mt
			}
			if cents > 0 {
				mt.incomeCents += cents
			} else {
				mt.expenseCents += -cents
			}
		}
	}

	if err := a.store.ClearBelowHeader(ctx, a.tabs.Summary); err != nil {
		return fmt.Errorf("clear summary: %w", err)
	}

	keys := make([]core.MonthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	core.SortMonthKeysDesc(keys)

	for _, key := range keys {
		mt := totals[key]
		balance := mt.incomeCents - mt.expenseCents
		row := []any{
			key.String(),
			core.Money{Cents: mt.incomeCents}.Reais(),
			core.Money{Cents: mt.expenseCents}.Reais(),
			core.Money{Cents: balance}.Reais(),
		}
		if err := a.store.AppendRow(ctx, a.tabs.Summary, row); err != nil {
			return fmt.Errorf("append summary row %s: %w", key, err)
		}
	}

	if len(keys) > 0 {
		if err := a.store.FormatCurrency(ctx, a.tabs.Summary, 2, len(keys)+1); err != nil {
			return fmt.Errorf("format summary: %w", err)
		}
	}

	slog.InfoContext(ctx, "Summary rebuilt", "months", len(keys))
	return nil
}

// UpdateMonth refreshes the current month's summary row after one
// transaction of the given type was written. The touched total is re-summed
// from the month's ledger rows rather than delta-added, so a concurrent or
// out-of-order write cannot leave a stale delta behind.
func (a *Aggregator) UpdateMonth(ctx context.Context, t core.TransactionType) error {
	if !t.Valid() {
		return core.ErrInvalidType
	}
	key := core.MonthKeyFor(a.now())

	row, err := a.findOrCreateSummaryRow(ctx, key)
	if err != nil {
		return err
	}

	total, err := a.sumMonth(ctx, a.tabs.ForType(t), key)
	if err != nil {
		return err
	}

	col := sheets.SummaryColIncome
	if t == core.TypeExpense {
		col = sheets.SummaryColExpense
		if total < 0 {
			total = -total
		}
	}
	if err := a.store.UpdateCell(ctx, a.tabs.Summary, row, col, core.Money{Cents: total}.Reais()); err != nil {
		return fmt.Errorf("update summary total: %w", err)
	}

	// Balance is recomputed from the written cells, which may come back
	// currency-formatted.
	income, err := a.readSummaryCents(ctx, row, sheets.SummaryColIncome)
	if err != nil {
		return err
	}
	expense, err := a.readSummaryCents(ctx, row, sheets.SummaryColExpense)
	if err != nil {
		return err
	}
	balance := income - expense
	if err := a.store.UpdateCell(ctx, a.tabs.Summary, row, sheets.SummaryColBalance, core.Money{Cents: balance}.Reais()); err != nil {
		return fmt.Errorf("update summary balance: %w", err)
	}

	if err := a.store.FormatCurrency(ctx, a.tabs.Summary, row, row); err != nil {
		return fmt.Errorf("format summary row: %w", err)
	}

	slog.InfoContext(ctx, "Summary month updated",
		log.FieldMonthYear, key.String(),
		log.FieldType, string(t),
		"balance_cents", balance)
	return nil
}

func (a *Aggregator) findOrCreateSummaryRow(ctx context.Context, key core.MonthKey) (int, error) {
	row, err := a.store.FindRow(ctx, a.tabs.Summary, key.String())
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sheets.ErrRowNotFound) {
		return 0, fmt.Errorf("find summary row: %w", err)
	}
	if err := a.store.AppendRow(ctx, a.tabs.Summary, []any{key.String(), 0, 0, 0}); err != nil {
		return 0, fmt.Errorf("create summary row: %w", err)
	}
	row, err = a.store.FindRow(ctx, a.tabs.Summary, key.String())
	if err != nil {
		return 0, fmt.Errorf("find summary row after create: %w", err)
	}
	return row, nil
}

// sumMonth sums the signed amounts of the tab's rows falling in the given
// month.
func (a *Aggregator) sumMonth(ctx context.Context, tab string, key core.MonthKey) (int64, error) {
	rows, err := a.store.ReadAllRows(ctx, tab)
	if err != nil {
		return 0, fmt.Errorf("read ledger tab %s: %w", tab, err)
	}
	var total int64
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		rowKey, err := core.MonthKeyFromDate(row[0])
		if err != nil || rowKey != key {
			continue
		}
		if cents, ok := core.ParseCurrencyCents(row[2]); ok {
			total += cents
		}
	}
	return total, nil
}

func (a *Aggregator) readSummaryCents(ctx context.Context, row, col int) (int64, error) {
	cell, err := a.store.ReadCell(ctx, a.tabs.Summary, row, col)
	if err != nil {
		return 0, fmt.Errorf("read summary cell: %w", err)
	}
	cents, ok := core.ParseCurrencyCents(cell)
	if !ok {
		return 0, nil
	}
	return cents, nil
}
