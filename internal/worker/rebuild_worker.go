// Package worker consumes transaction-recorded events and rebuilds the
// monthly summary from scratch. The synchronous incremental update already
// keeps the summary fresh; the full rebuild is the safety net that repairs
// any month a failed or raced update left behind.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finbot/internal/amqp"
	"finbot/internal/log"
)

// SummaryRebuilder is the aggregator surface the worker drives.
type SummaryRebuilder interface {
	Rebuild(ctx context.Context) error
}

type RebuildWorker struct {
	aggregator SummaryRebuilder
}

func NewRebuildWorker(aggregator SummaryRebuilder) *RebuildWorker {
	return &RebuildWorker{aggregator: aggregator}
}

// HandleEvent runs one full rebuild. Rebuilds are idempotent, so collapsing
// or re-delivering events is harmless.
func (w *RebuildWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	slog.InfoContext(ctx, "Rebuilding summary after transaction event",
		"event_id", msg.ID,
		log.FieldType, msg.Type)

	if err := w.aggregator.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild summary: %w", err)
	}
	return nil
}
