// Package core holds the domain types of the bot: transactions, money
// amounts, month keys and category catalogs.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmountCents parses a user-typed amount into cents.
//
// Both dot (50.90) and comma (50,90) decimal separators are accepted and
// yield the same value. A third decimal digit is rounded half-up. A leading
// sign is parsed so that zero and negative inputs are reported as
// ErrNonPositiveAmount, distinct from ErrInvalidAmount for non-numeric text.
func ParseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative || cents <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return cents, nil
}

// ParseCurrencyCents coerces a spreadsheet cell value into signed cents.
//
// Cells read back from the summary sheet may hold raw numbers ("3000",
// "-50.9") or currency-formatted strings ("R$ 1.234,56"). Both forms
// normalize to the same cents value:
//   - dot and comma both present: dots are thousands separators, comma is
//     the decimal separator;
//   - only a comma: decimal comma;
//   - only dots: decimal dot.
//
// The boolean is false when the cell holds no parseable number.
func ParseCurrencyCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	hasComma := strings.Contains(s, ",")
	if hasComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		return -int64(-f*100.0 + 0.5), true
	}
	return int64(f*100.0 + 0.5), true
}
