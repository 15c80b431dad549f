package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"finbot/internal/core"
	"finbot/internal/log"
)

type ledgerFake struct {
	appended []core.Transaction
	err      error
}

func (f *ledgerFake) Append(_ context.Context, tx core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, tx)
	return nil
}

type monthsFake struct {
	calls []core.TransactionType
	err   error
}

func (f *monthsFake) UpdateMonth(_ context.Context, t core.TransactionType) error {
	f.calls = append(f.calls, t)
	return f.err
}

type journalFake struct {
	inserted int
	err      error
}

func (f *journalFake) Insert(_ context.Context, _ core.Transaction) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted++
	return int64(f.inserted), nil
}

type publisherFake struct {
	published int
	err       error
}

func (f *publisherFake) PublishTransactionRecorded(_ context.Context, _ core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.published++
	return nil
}

func sampleTx() core.Transaction {
	return core.Transaction{
		Type:        core.TypeExpense,
		Amount:      core.Money{Cents: 5090},
		Description: "mercado",
		Category:    "Alimentação",
	}
}

func TestRecordStampsDateAndRunsPipeline(t *testing.T) {
	ledger := &ledgerFake{}
	months := &monthsFake{}
	journal := &journalFake{}
	events := &publisherFake{}
	fixed := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	svc := NewRecordService(ledger, months).
		WithJournal(journal).
		WithEvents(events).
		WithClock(func() time.Time { return fixed })

	if err := svc.Record(context.Background(), sampleTx()); err != nil {
		t.Fatal(err)
	}

	if len(ledger.appended) != 1 {
		t.Fatalf("appended %d", len(ledger.appended))
	}
	if !ledger.appended[0].Date.Equal(fixed) {
		t.Fatalf("date = %v, want %v", ledger.appended[0].Date, fixed)
	}
	if len(months.calls) != 1 || months.calls[0] != core.TypeExpense {
		t.Fatalf("month updates = %v", months.calls)
	}
	if journal.inserted != 1 || events.published != 1 {
		t.Fatalf("journal=%d events=%d", journal.inserted, events.published)
	}
}

func TestRecordLedgerFailureIsFatal(t *testing.T) {
	ledger := &ledgerFake{err: errors.New("sheet unreachable")}
	months := &monthsFake{}
	svc := NewRecordService(ledger, months)

	if err := svc.Record(context.Background(), sampleTx()); err == nil {
		t.Fatal("expected error")
	}
	if len(months.calls) != 0 {
		t.Fatal("summary should not update when the append failed")
	}
}

func TestRecordBestEffortStepsDoNotFail(t *testing.T) {
	ledger := &ledgerFake{}
	months := &monthsFake{err: errors.New("summary tab missing")}
	journal := &journalFake{err: errors.New("disk full")}
	events := &publisherFake{err: errors.New("broker down")}

	svc := NewRecordService(ledger, months).WithJournal(journal).WithEvents(events)

	if err := svc.Record(context.Background(), sampleTx()); err != nil {
		t.Fatalf("best-effort failures should not surface: %v", err)
	}
	if len(ledger.appended) != 1 {
		t.Fatal("ledger append should have happened")
	}
}

func TestRecordWithoutOptionalCollaborators(t *testing.T) {
	svc := NewRecordService(&ledgerFake{}, &monthsFake{})
	if err := svc.Record(context.Background(), sampleTx()); err != nil {
		t.Fatal(err)
	}
}

func TestRecordLogsFailuresWithStandardFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ledger := &ledgerFake{}
	months := &monthsFake{err: errors.New("summary tab missing")}
	svc := NewRecordService(ledger, months)

	if err := svc.Record(context.Background(), sampleTx()); err != nil {
		t.Fatal(err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry[log.FieldType] != string(core.TypeExpense) {
		t.Errorf("%s = %v, want %q", log.FieldType, entry[log.FieldType], core.TypeExpense)
	}
	if entry[log.FieldError] != "summary tab missing" {
		t.Errorf("%s = %v", log.FieldError, entry[log.FieldError])
	}
}
