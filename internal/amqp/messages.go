package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finbot/internal/core"
)

// TransactionRecordedMessage announces that one transaction reached the
// ledger. The worker reacts by rebuilding the summary tab; the message
// carries enough to log meaningfully but consumers re-read the ledger, so
// a lost field is never a correctness problem.
type TransactionRecordedMessage struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewTransactionRecordedMessage(tx core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:          uuid.NewString(),
		Type:        string(tx.Type),
		AmountCents: tx.SignedCents(),
		Category:    tx.Category,
		OccurredAt:  tx.Date,
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
