// Package services orchestrates what happens when a dialogue completes:
// ledger append, summary update, journal mirror and event publish.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finbot/internal/core"
	"finbot/internal/log"
)

// RecordService persists one completed transaction. Only the ledger append
// can fail the call; the summary update, journal mirror and event publish
// are best-effort and merely logged. Nothing is retried.
type RecordService struct {
	ledger  LedgerAppender
	months  MonthUpdater
	journal JournalWriter // optional
	events  EventPublisher // optional
	now     func() time.Time
}

func NewRecordService(ledger LedgerAppender, months MonthUpdater) *RecordService {
	return &RecordService{ledger: ledger, months: months, now: time.Now}
}

// WithJournal mirrors every recorded transaction into the local journal.
func (s *RecordService) WithJournal(j JournalWriter) *RecordService {
	s.journal = j
	return s
}

// WithEvents publishes an event after every recorded transaction.
func (s *RecordService) WithEvents(p EventPublisher) *RecordService {
	s.events = p
	return s
}

// WithClock overrides the clock that stamps transaction dates.
func (s *RecordService) WithClock(now func() time.Time) *RecordService {
	s.now = now
	return s
}

// Record stamps the submission date and runs the persistence pipeline.
func (s *RecordService) Record(ctx context.Context, tx core.Transaction) error {
	tx.Date = s.now()

	if err := s.ledger.Append(ctx, tx); err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := s.months.UpdateMonth(ctx, tx.Type); err != nil {
		slog.WarnContext(ctx, "Summary update failed, will be fixed by next rebuild",
			log.FieldType, string(tx.Type), log.FieldError, err)
	}

	if s.journal != nil {
		if _, err := s.journal.Insert(ctx, tx); err != nil {
			slog.WarnContext(ctx, "Journal insert failed", log.FieldError, err)
		}
	}

	if s.events != nil {
		if err := s.events.PublishTransactionRecorded(ctx, tx); err != nil {
			slog.WarnContext(ctx, "Event publish failed", log.FieldError, err)
		}
	}

	return nil
}
