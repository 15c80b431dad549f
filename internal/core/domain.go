package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// DateLayout is the ledger date format (DD/MM/YYYY).
const DateLayout = "02/01/2006"

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is one user-submitted financial event. Amount is always
	// positive; the sign is derived from Type at persistence time.
	Transaction struct {
		Type        TransactionType
		Amount      Money
		Description string
		Category    string
		Date        time.Time
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidType       = errors.New("invalid transaction type")
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Reais returns the value as a float64 for display and for writing numeric
// cells. Use cents for arithmetic.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// SignedCents returns the cents to persist: positive for income, negative
// for expense.
func (t Transaction) SignedCents() int64 {
	if t.Type == TypeExpense {
		return -t.Amount.Cents
	}
	return t.Amount.Cents
}
