package bot

import (
	"testing"

	tele "gopkg.in/telebot.v3"

	"finbot/internal/dialog"
)

func TestToMarkup(t *testing.T) {
	tests := []struct {
		name  string
		reply dialog.Reply
		check func(t *testing.T, m *tele.ReplyMarkup)
	}{
		{
			name:  "keyboard reply resizes and carries buttons",
			reply: dialog.Reply{Text: "Escolha", Keyboard: [][]string{{"🚪 Sair"}}},
			check: func(t *testing.T, m *tele.ReplyMarkup) {
				if m == nil {
					t.Fatal("markup = nil")
				}
				if !m.ResizeKeyboard {
					t.Error("ResizeKeyboard not set")
				}
				if len(m.ReplyKeyboard) != 1 || m.ReplyKeyboard[0][0].Text != "🚪 Sair" {
					t.Errorf("keyboard = %+v", m.ReplyKeyboard)
				}
			},
		},
		{
			name:  "removal reply clears the keyboard",
			reply: dialog.Reply{Text: "Até logo!", RemoveKeyboard: true},
			check: func(t *testing.T, m *tele.ReplyMarkup) {
				if m == nil {
					t.Fatal("markup = nil")
				}
				if !m.RemoveKeyboard {
					t.Error("RemoveKeyboard not set")
				}
				if len(m.ReplyKeyboard) != 0 {
					t.Errorf("unexpected keyboard %+v", m.ReplyKeyboard)
				}
			},
		},
		{
			name:  "plain text reply has no markup",
			reply: dialog.Reply{Text: "Ok"},
			check: func(t *testing.T, m *tele.ReplyMarkup) {
				if m != nil {
					t.Fatalf("markup = %+v, want nil", m)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, toMarkup(tt.reply))
		})
	}
}

func TestToReplyKeyboard(t *testing.T) {
	rows := [][]string{
		{"💰 Registrar Receita"},
		{"💸 Registrar Despesa", "🚪 Sair"},
	}
	keyboard := toReplyKeyboard(rows)

	if len(keyboard) != 2 {
		t.Fatalf("rows = %d", len(keyboard))
	}
	if len(keyboard[1]) != 2 {
		t.Fatalf("second row buttons = %d", len(keyboard[1]))
	}
	if keyboard[0][0].Text != "💰 Registrar Receita" {
		t.Fatalf("button text = %q", keyboard[0][0].Text)
	}
}
