// Package sheets defines the ports to the spreadsheet ledger store.
package sheets

import (
	"context"
	"errors"

	"finbot/internal/core"
)

// Row is one sheet row as read back: every cell coerced to string.
type Row []string

// ErrRowNotFound is returned by FindRow when no row carries the key.
var ErrRowNotFound = errors.New("row not found")

// Ports for the tabular store. Row and column indexes are 1-based, matching
// spreadsheet addressing; row 1 is the header.
type (
	RowAppender interface {
		AppendRow(ctx context.Context, tab string, values []any) error
	}

	RowReader interface {
		// ReadAllRows returns every row of the tab, header first.
		ReadAllRows(ctx context.Context, tab string) ([]Row, error)
	}

	RowFinder interface {
		// FindRow returns the 1-based index of the first row whose key
		// column equals key, or ErrRowNotFound.
		FindRow(ctx context.Context, tab, key string) (int, error)
	}

	CellReader interface {
		ReadCell(ctx context.Context, tab string, row, col int) (string, error)
	}

	CellUpdater interface {
		UpdateCell(ctx context.Context, tab string, row, col int, value any) error
	}

	RowClearer interface {
		// ClearBelowHeader empties every row of the tab except row 1.
		ClearBelowHeader(ctx context.Context, tab string) error
	}

	// CurrencyFormatter applies currency display formatting to the numeric
	// columns of the given row range. Cosmetic only: correctness never
	// depends on it.
	CurrencyFormatter interface {
		FormatCurrency(ctx context.Context, tab string, firstRow, lastRow int) error
	}
)

// Store is the full ledger store surface.
type Store interface {
	RowAppender
	RowReader
	RowFinder
	CellReader
	CellUpdater
	RowClearer
	CurrencyFormatter
}

// Tabs names the three tabs of the spreadsheet.
type Tabs struct {
	Expenses string
	Income   string
	Summary  string
}

// DefaultTabs matches the layout the bot was built against.
func DefaultTabs() Tabs {
	return Tabs{Expenses: "Despesas", Income: "Receitas", Summary: "Resumo Mensal"}
}

// ForType returns the ledger tab transactions of the given type append to.
func (t Tabs) ForType(tt core.TransactionType) string {
	if tt == core.TypeIncome {
		return t.Income
	}
	return t.Expenses
}

// Header rows as laid out in the spreadsheet.
var (
	LedgerHeader  = []any{"Data", "Descrição", "Valor", "Categoria"}
	SummaryHeader = []any{"Mês/Ano", "Receitas", "Despesas", "Saldo"}
)

// Summary sheet column numbers.
const (
	SummaryColKey     = 1
	SummaryColIncome  = 2
	SummaryColExpense = 3
	SummaryColBalance = 4
)
