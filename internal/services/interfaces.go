package services

import (
	"context"

	"finbot/internal/core"
)

// Collaborators of the record pipeline, narrowed for testability.
type (
	// LedgerAppender writes the transaction row to the spreadsheet.
	LedgerAppender interface {
		Append(ctx context.Context, tx core.Transaction) error
	}

	// MonthUpdater refreshes the summary row for the current month.
	MonthUpdater interface {
		UpdateMonth(ctx context.Context, t core.TransactionType) error
	}

	// JournalWriter mirrors the transaction into the local journal.
	JournalWriter interface {
		Insert(ctx context.Context, tx core.Transaction) (int64, error)
	}

	// EventPublisher announces a persisted transaction.
	EventPublisher interface {
		PublishTransactionRecorded(ctx context.Context, tx core.Transaction) error
	}
)
