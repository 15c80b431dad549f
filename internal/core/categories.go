package core

import "strings"

// Category catalogs shown as reply-keyboard buttons. Labels carry a
// decorative emoji prefix on the wire; the stored category is the label
// with the prefix stripped.
var (
	ExpenseCategoryButtons = [][]string{
		{"🍽️ Alimentação", "🚗 Transporte"},
		{"💊 Saúde", "🏠 Moradia"},
		{"🎓 Educação", "🎭 Lazer"},
		{"👕 Vestuário", "💡 Utilidades"},
		{"💰 Outros"},
	}

	IncomeCategoryButtons = [][]string{
		{"💼 Salário"},
		{"💵 Renda Extra"},
		{"🎁 Outros Ganhos"},
	}

	decorativePrefixes = []string{
		"🍽️ ", "🚗 ", "💊 ", "🏠 ", "🎓 ", "🎭 ",
		"👕 ", "💡 ", "💰 ", "💼 ", "💵 ", "🎁 ",
	}
)

// CategoryButtonsFor returns the keyboard rows for the given type.
func CategoryButtonsFor(t TransactionType) [][]string {
	if t == TypeIncome {
		return IncomeCategoryButtons
	}
	return ExpenseCategoryButtons
}

// CategoryChoice is the result of matching user input against the catalog
// of the current transaction type.
type CategoryChoice struct {
	// Label is what gets stored: the input with decorative prefixes
	// stripped. Free text with no known prefix passes through verbatim.
	Label      string
	Recognized bool
}

// MatchCategory normalizes a category selection and reports whether it is
// one of the enumerated categories for the type. Unrecognized input is not
// an error: the normalized text is stored as-is.
func MatchCategory(t TransactionType, input string) CategoryChoice {
	label := StripDecorations(input)
	for _, row := range CategoryButtonsFor(t) {
		for _, button := range row {
			if label == StripDecorations(button) {
				return CategoryChoice{Label: label, Recognized: true}
			}
		}
	}
	return CategoryChoice{Label: label}
}

// StripDecorations removes the known decorative prefixes by literal
// substring removal. Text containing none of them is returned unchanged.
func StripDecorations(s string) string {
	for _, p := range decorativePrefixes {
		s = strings.ReplaceAll(s, p, "")
	}
	return strings.TrimSpace(s)
}
