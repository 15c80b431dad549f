// Package memory is an in-memory grid store used by tests and by the
// "memory" backend for local runs without a spreadsheet.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"finbot/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	grid map[string][][]string

	// FormattedRanges records FormatCurrency calls as "tab!first:last",
	// in order. Formatting itself is a no-op here.
	FormattedRanges []string
}

// New creates a store with the three tabs seeded with their header rows.
func New(tabs sheets.Tabs) *Store {
	s := &Store{grid: make(map[string][][]string)}
	s.grid[tabs.Expenses] = [][]string{toStrings(sheets.LedgerHeader)}
	s.grid[tabs.Income] = [][]string{toStrings(sheets.LedgerHeader)}
	s.grid[tabs.Summary] = [][]string{toStrings(sheets.SummaryHeader)}
	return s
}

func (s *Store) AppendRow(_ context.Context, tab string, values []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grid[tab]; !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	s.grid[tab] = append(s.grid[tab], toStrings(values))
	return nil
}

func (s *Store) ReadAllRows(_ context.Context, tab string) ([]sheets.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.grid[tab]
	if !ok {
		return nil, fmt.Errorf("unknown tab %q", tab)
	}
	out := make([]sheets.Row, len(rows))
	for i, r := range rows {
		out[i] = append(sheets.Row(nil), r...)
	}
	return out, nil
}

func (s *Store) FindRow(_ context.Context, tab, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.grid[tab]
	if !ok {
		return 0, fmt.Errorf("unknown tab %q", tab)
	}
	for i, r := range rows {
		if len(r) > 0 && r[0] == key {
			return i + 1, nil
		}
	}
	return 0, sheets.ErrRowNotFound
}

func (s *Store) ReadCell(_ context.Context, tab string, row, col int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.grid[tab]
	if !ok {
		return "", fmt.Errorf("unknown tab %q", tab)
	}
	if row < 1 || row > len(rows) {
		return "", fmt.Errorf("row %d out of range in %q", row, tab)
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return "", nil
	}
	return r[col-1], nil
}

func (s *Store) UpdateCell(_ context.Context, tab string, row, col int, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.grid[tab]
	if !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range in %q", row, tab)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = cellString(value)
	return nil
}

func (s *Store) ClearBelowHeader(_ context.Context, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.grid[tab]
	if !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	if len(rows) > 1 {
		s.grid[tab] = rows[:1]
	}
	return nil
}

func (s *Store) FormatCurrency(_ context.Context, tab string, firstRow, lastRow int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grid[tab]; !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	s.FormattedRanges = append(s.FormattedRanges, fmt.Sprintf("%s!%d:%d", tab, firstRow, lastRow))
	return nil
}

func toStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cellString(v)
	}
	return out
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
