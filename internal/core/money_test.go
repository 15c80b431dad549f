package core

import (
	"errors"
	"testing"
)

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"dot decimal", "50.90", 5090},
		{"comma decimal", "50,90", 5090},
		{"integer", "3000", 300000},
		{"single fraction digit", "50.9", 5090},
		{"third digit rounds up", "12.346", 1235},
		{"third digit of five rounds up", "12.345", 1235},
		{"third digit below five rounds down", "12.344", 1234},
		{"leading dot", ".50", 50},
		{"surrounding spaces", " 42,00 ", 4200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountCents(tt.input)
			if err != nil {
				t.Fatalf("ParseAmountCents(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseAmountCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmountCentsSeparatorsAgree(t *testing.T) {
	dot, err := ParseAmountCents("50.90")
	if err != nil {
		t.Fatal(err)
	}
	comma, err := ParseAmountCents("50,90")
	if err != nil {
		t.Fatal(err)
	}
	if dot != comma {
		t.Fatalf("separator mismatch: dot=%d comma=%d", dot, comma)
	}
}

func TestParseAmountCentsRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrInvalidAmount},
		{"letters", "abc", ErrInvalidAmount},
		{"mixed", "12a.50", ErrInvalidAmount},
		{"two separators", "1.2.3", ErrInvalidAmount},
		{"zero", "0", ErrNonPositiveAmount},
		{"zero decimal", "0,00", ErrNonPositiveAmount},
		{"negative", "-5", ErrNonPositiveAmount},
		{"negative decimal", "-50,90", ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmountCents(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAmountCents(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseCurrencyCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"raw integer", "3000", 300000},
		{"raw decimal", "-50.9", -5090},
		{"decimal comma", "50,90", 5090},
		{"currency formatted", "R$ 1.234,56", 123456},
		{"currency negative", "R$ -1.234,56", -123456},
		{"currency no space", "R$3000,00", 300000},
		{"thousands only", "1.234.567,89", 123456789},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCurrencyCents(tt.input)
			if !ok {
				t.Fatalf("ParseCurrencyCents(%q) not parseable", tt.input)
			}
			if got != tt.want {
				t.Fatalf("ParseCurrencyCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "  ", "R$", "Categoria", "12x3"} {
		if _, ok := ParseCurrencyCents(bad); ok {
			t.Fatalf("ParseCurrencyCents(%q) should not parse", bad)
		}
	}
}
