package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finbot/internal/core"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func mkTx(t core.TransactionType, cents int64, desc, category string, date time.Time) core.Transaction {
	return core.Transaction{
		Type:        t,
		Amount:      core.Money{Cents: cents},
		Description: desc,
		Category:    category,
		Date:        date,
	}
}

func TestJournalInsertAndListRecent(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	id1, err := j.Insert(ctx, mkTx(core.TypeIncome, 300000, "Salário", "Salário", date))
	if err != nil {
		t.Fatalf("Insert income: %v", err)
	}
	id2, err := j.Insert(ctx, mkTx(core.TypeExpense, 5090, "Uber", "Transporte", date))
	if err != nil {
		t.Fatalf("Insert expense: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}

	entries, err := j.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Most recent first.
	if entries[0].Description != "Uber" {
		t.Errorf("first entry = %q, want Uber", entries[0].Description)
	}
	if entries[0].AmountCents != -5090 {
		t.Errorf("expense amount_cents = %d, want -5090", entries[0].AmountCents)
	}
	if entries[1].AmountCents != 300000 {
		t.Errorf("income amount_cents = %d, want 300000", entries[1].AmountCents)
	}
}

func TestJournalListRecentHonorsLimit(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := j.Insert(ctx, mkTx(core.TypeExpense, 1000, "Café", "Alimentação", date)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	entries, err := j.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestJournalMonthTotals(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	inserts := []core.Transaction{
		mkTx(core.TypeIncome, 300000, "Salário", "Salário", march),
		mkTx(core.TypeExpense, 5090, "Uber", "Transporte", march),
		mkTx(core.TypeExpense, 6000, "Mercado", "Alimentação", march),
		mkTx(core.TypeExpense, 9900, "Cinema", "Lazer", april),
	}
	for _, tx := range inserts {
		if _, err := j.Insert(ctx, tx); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	totals, err := j.MonthTotals(ctx, core.MonthKey{Year: 2024, Month: 3})
	if err != nil {
		t.Fatalf("MonthTotals: %v", err)
	}
	if totals.IncomeCents != 300000 {
		t.Errorf("income = %d, want 300000", totals.IncomeCents)
	}
	if totals.ExpenseCents != 11090 {
		t.Errorf("expense = %d, want 11090", totals.ExpenseCents)
	}
	if totals.BalanceCents() != 288910 {
		t.Errorf("balance = %d, want 288910", totals.BalanceCents())
	}
}

func TestJournalMonthTotalsEmptyMonth(t *testing.T) {
	j := newTestJournal(t)

	totals, err := j.MonthTotals(context.Background(), core.MonthKey{Year: 2030, Month: 1})
	if err != nil {
		t.Fatalf("MonthTotals: %v", err)
	}
	if totals.IncomeCents != 0 || totals.ExpenseCents != 0 {
		t.Errorf("totals = %+v, want zeroes", totals)
	}
}
