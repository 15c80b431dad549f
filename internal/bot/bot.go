// Package bot adapts the dialogue engine to Telegram via telebot. It only
// moves text and keyboards; every conversational decision lives in the
// dialog package.
package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v3"

	"finbot/internal/dialog"
	"finbot/internal/log"
)

// turnTimeout bounds one update's store round trip. A stalled store call
// stalls only that chat's turn.
const turnTimeout = 30 * time.Second

type Bot struct {
	tb     *tele.Bot
	engine *dialog.Engine
}

// New creates the bot and registers the /start, /cancel and free-text
// handlers.
func New(token string, poller tele.Poller, engine *dialog.Engine) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: poller,
		OnError: func(err error, c tele.Context) {
			// Outermost net: an update must never take the process down.
			var chatID int64
			if c != nil && c.Chat() != nil {
				chatID = c.Chat().ID
			}
			slog.Error("Unhandled bot error", log.FieldChatID, chatID, log.FieldError, err)
		},
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{tb: tb, engine: engine}

	tb.Handle("/start", func(c tele.Context) error {
		return send(c, b.engine.Start(c.Chat().ID))
	})

	tb.Handle("/cancel", func(c tele.Context) error {
		return send(c, b.engine.Cancel(c.Chat().ID))
	})

	tb.Handle(tele.OnText, func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		return send(c, b.engine.HandleText(ctx, c.Chat().ID, c.Text()))
	})

	return b, nil
}

// Start begins processing updates and blocks until Stop is called.
func (b *Bot) Start() {
	slog.Info("Bot started", "username", b.tb.Me.Username)
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

func send(c tele.Context, reply dialog.Reply) error {
	markup := toMarkup(reply)
	if markup == nil {
		return c.Send(reply.Text)
	}
	return c.Send(reply.Text, markup)
}

// toMarkup translates a dialogue reply into Telegram markup, nil when the
// reply carries neither a keyboard nor a removal.
func toMarkup(reply dialog.Reply) *tele.ReplyMarkup {
	switch {
	case len(reply.Keyboard) > 0:
		return &tele.ReplyMarkup{
			ResizeKeyboard: true,
			ReplyKeyboard:  toReplyKeyboard(reply.Keyboard),
		}
	case reply.RemoveKeyboard:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	default:
		return nil
	}
}

func toReplyKeyboard(rows [][]string) [][]tele.ReplyButton {
	keyboard := make([][]tele.ReplyButton, len(rows))
	for i, row := range rows {
		buttons := make([]tele.ReplyButton, len(row))
		for j, label := range row {
			buttons[j] = tele.ReplyButton{Text: label}
		}
		keyboard[i] = buttons
	}
	return keyboard
}
