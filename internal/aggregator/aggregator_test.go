package aggregator

import (
	"context"
	"reflect"
	"testing"
	"time"

	"finbot/internal/core"
	"finbot/internal/sheets"
	"finbot/internal/sheets/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func appendLedger(t *testing.T, store *memory.Store, tab, date, desc string, amount float64, category string) {
	t.Helper()
	if err := store.AppendRow(context.Background(), tab, []any{date, desc, amount, category}); err != nil {
		t.Fatal(err)
	}
}

func TestRebuildGroupsAndOrdersDescending(t *testing.T) {
	ctx := context.Background()
	tabs := sheets.DefaultTabs()
	store := memory.New(tabs)

	appendLedger(t, store, tabs.Expenses, "15/01/2024", "mercado", -100.50, "Alimentação")
	appendLedger(t, store, tabs.Expenses, "20/01/2024", "ônibus", -9.50, "Transporte")
	appendLedger(t, store, tabs.Expenses, "03/02/2024", "farmácia", -30.00, "Saúde")
	appendLedger(t, store, tabs.Income, "05/01/2024", "salário", 3000.00, "Salário")
	// Malformed rows are skipped, not fatal.
	appendLedger(t, store, tabs.Income, "not-a-date", "x", 10, "Outros")
	appendLedger(t, store, tabs.Income, "10/02/2024", "freela", 500.00, "Renda Extra")

	agg := New(store, tabs)
	if err := agg.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}

	rows, err := store.ReadAllRows(ctx, tabs.Summary)
	if err != nil {
		t.Fatal(err)
	}
	want := []sheets.Row{
		{"Mês/Ano", "Receitas", "Despesas", "Saldo"},
		{"02/2024", "500", "30", "470"},
		{"01/2024", "3000", "110", "2890"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("summary = %v, want %v", rows, want)
	}

	// Currency formatting covers the data rows below the header.
	if len(store.FormattedRanges) == 0 || store.FormattedRanges[len(store.FormattedRanges)-1] != tabs.Summary+"!2:3" {
		t.Fatalf("formatted ranges = %v", store.FormattedRanges)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tabs := sheets.DefaultTabs()
	store := memory.New(tabs)

	appendLedger(t, store, tabs.Expenses, "15/01/2024", "mercado", -100.50, "Alimentação")
	appendLedger(t, store, tabs.Income, "05/02/2024", "salário", 3000.00, "Salário")

	agg := New(store, tabs)
	if err := agg.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}
	first, err := store.ReadAllRows(ctx, tabs.Summary)
	if err != nil {
		t.Fatal(err)
	}

	if err := agg.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}
	second, err := store.ReadAllRows(ctx, tabs.Summary)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rebuild not idempotent:\nfirst  %v\nsecond %v", first, second)
	}
}

func TestUpdateMonthCreatesRowAndComputesBalance(t *testing.T) {
	ctx := context.Background()
	tabs := sheets.DefaultTabs()
	store := memory.New(tabs)
	now := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	agg := New(store, tabs).WithClock(fixedClock(now))

	appendLedger(t, store, tabs.Expenses, "10/02/2024", "mercado", -50.90, "Transporte")
	// A row from another month must not leak into the total.
	appendLedger(t, store, tabs.Expenses, "10/01/2024", "velho", -999.00, "Outros")

	if err := agg.UpdateMonth(ctx, core.TypeExpense); err != nil {
		t.Fatal(err)
	}

	row, err := store.FindRow(ctx, tabs.Summary, "02/2024")
	if err != nil {
		t.Fatal(err)
	}
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColExpense, "50.9")
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColBalance, "-50.9")

	// Now an income lands in the same month.
	appendLedger(t, store, tabs.Income, "15/02/2024", "salary", 3000.00, "Salário")
	if err := agg.UpdateMonth(ctx, core.TypeIncome); err != nil {
		t.Fatal(err)
	}
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColIncome, "3000")
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColExpense, "50.9")
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColBalance, "2949.1")
}

func TestUpdateMonthResumsFromSource(t *testing.T) {
	ctx := context.Background()
	tabs := sheets.DefaultTabs()
	store := memory.New(tabs)
	now := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	agg := New(store, tabs).WithClock(fixedClock(now))

	appendLedger(t, store, tabs.Expenses, "01/02/2024", "a", -10.00, "Outros")
	if err := agg.UpdateMonth(ctx, core.TypeExpense); err != nil {
		t.Fatal(err)
	}
	appendLedger(t, store, tabs.Expenses, "02/02/2024", "b", -40.90, "Outros")
	if err := agg.UpdateMonth(ctx, core.TypeExpense); err != nil {
		t.Fatal(err)
	}

	row, err := store.FindRow(ctx, tabs.Summary, "02/2024")
	if err != nil {
		t.Fatal(err)
	}
	// Re-summed from source rows: 10.00 + 40.90, not a delta on top of a
	// possibly stale cell.
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColExpense, "50.9")
}

func TestUpdateMonthToleratesCurrencyFormattedCells(t *testing.T) {
	ctx := context.Background()
	tabs := sheets.DefaultTabs()
	store := memory.New(tabs)
	now := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	agg := New(store, tabs).WithClock(fixedClock(now))

	// Summary row already exists with currency-formatted strings, as read
	// back from a formatted sheet.
	if err := store.AppendRow(ctx, tabs.Summary, []any{"02/2024", "R$ 3.000,00", "R$ 0,00", "R$ 3.000,00"}); err != nil {
		t.Fatal(err)
	}
	appendLedger(t, store, tabs.Expenses, "10/02/2024", "mercado", -50.90, "Alimentação")

	if err := agg.UpdateMonth(ctx, core.TypeExpense); err != nil {
		t.Fatal(err)
	}

	row, err := store.FindRow(ctx, tabs.Summary, "02/2024")
	if err != nil {
		t.Fatal(err)
	}
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColExpense, "50.9")
	assertCell(t, store, tabs.Summary, row, sheets.SummaryColBalance, "2949.1")
}

func assertCell(t *testing.T, store *memory.Store, tab string, row, col int, want string) {
	t.Helper()
	got, err := store.ReadCell(context.Background(), tab, row, col)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("cell (%d,%d) = %q, want %q", row, col, got, want)
	}
}
