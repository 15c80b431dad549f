package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one summary row: the month/year portion of a date,
// rendered as MM/YYYY.
type MonthKey struct {
	Year  int
	Month int // 1-12
}

var ErrInvalidMonthKey = errors.New("invalid month key")

func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// ParseMonthKey parses "MM/YYYY".
func ParseMonthKey(s string) (MonthKey, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MonthKey{}, ErrInvalidMonthKey
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, ErrInvalidMonthKey
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1 {
		return MonthKey{}, ErrInvalidMonthKey
	}
	return MonthKey{Year: year, Month: month}, nil
}

// MonthKeyFromDate extracts the key from a ledger date in DD/MM/YYYY form,
// discarding the day.
func MonthKeyFromDate(date string) (MonthKey, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return MonthKey{}, ErrInvalidMonthKey
	}
	return MonthKeyFor(t), nil
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%02d/%04d", k.Month, k.Year)
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// SortMonthKeysDesc orders keys most recent first, the order summary rows
// are written in.
func SortMonthKeysDesc(keys []MonthKey) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[j].Before(keys[i])
	})
}
