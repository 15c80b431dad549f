// Package dialog implements the per-chat conversation state machine that
// collects one transaction: type, amount, description and category.
//
// Input is validated at the boundary between states: a rejected input
// re-prompts the same state and leaves the session untouched. Persistence
// failures are non-fatal to the conversation: the user sees an error and
// the dialogue still advances to the post-submit menu.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"finbot/internal/core"
	"finbot/internal/log"
)

type State int

const (
	StateChoosingType State = iota
	StateEnteringAmount
	StateEnteringDescription
	StateChoosingCategory
	StatePostSubmitMenu
)

// Session is the ephemeral per-chat conversation state. It exists only
// between /start and completion, cancellation or exit.
type Session struct {
	State       State
	Type        core.TransactionType
	AmountCents int64
	Description string
	Category    string
}

func (s *Session) resetData() {
	s.Type = ""
	s.AmountCents = 0
	s.Description = ""
	s.Category = ""
}

// Reply is the outbound message for one turn. Keyboard rows, when present,
// render as a fixed choice menu; RemoveKeyboard drops any previous menu.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

// Recorder persists a completed transaction. A non-nil error means the
// store could not be reached; the engine surfaces it to the user but the
// session advances regardless.
type Recorder interface {
	Record(ctx context.Context, tx core.Transaction) error
}

// Engine owns every chat's session. Sessions are created by Start and
// cleared on cancel, exit or finish. The transport delivers one message per
// chat at a time; the engine's lock only guards the session map, so one
// chat's store round trip never blocks another chat's turn.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	recorder Recorder
}

func NewEngine(recorder Recorder) *Engine {
	return &Engine{
		sessions: make(map[int64]*Session),
		recorder: recorder,
	}
}

// Start creates (or restarts) the chat's session and shows the main menu.
func (e *Engine) Start(chatID int64) Reply {
	e.mu.Lock()
	e.sessions[chatID] = &Session{State: StateChoosingType}
	e.mu.Unlock()

	slog.Info("Session started", log.FieldChatID, chatID)
	return Reply{Text: msgWelcome, Keyboard: mainMenuKeyboard}
}

// Cancel discards the chat's session from any state.
func (e *Engine) Cancel(chatID int64) Reply {
	e.mu.Lock()
	_, had := e.sessions[chatID]
	delete(e.sessions, chatID)
	e.mu.Unlock()

	if had {
		slog.Info("Session cancelled", log.FieldChatID, chatID)
	}
	return Reply{Text: msgCancelled, RemoveKeyboard: true}
}

// Active reports whether the chat has a session in flight.
func (e *Engine) Active(chatID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[chatID]
	return ok
}

// SessionSnapshot returns a copy of the chat's session, if any.
func (e *Engine) SessionSnapshot(chatID int64) (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// HandleText advances the chat's state machine with one inbound message.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) Reply {
	e.mu.Lock()
	s, ok := e.sessions[chatID]
	e.mu.Unlock()
	if !ok {
		return Reply{Text: msgIdleHint}
	}

	switch s.State {
	case StateChoosingType:
		return e.chooseType(chatID, s, text)
	case StateEnteringAmount:
		return e.enterAmount(s, text)
	case StateEnteringDescription:
		return e.enterDescription(s, text)
	case StateChoosingCategory:
		return e.chooseCategory(ctx, chatID, s, text)
	case StatePostSubmitMenu:
		return e.postSubmitMenu(chatID, s, text)
	default:
		// Unreachable; drop the broken session rather than loop on it.
		e.endSession(chatID)
		return Reply{Text: msgIdleHint, RemoveKeyboard: true}
	}
}

func (e *Engine) chooseType(chatID int64, s *Session, text string) Reply {
	switch text {
	case ButtonRecordIncome:
		s.Type = core.TypeIncome
		s.State = StateEnteringAmount
		return Reply{Text: msgAskIncomeAmount, RemoveKeyboard: true}
	case ButtonRecordExpense:
		s.Type = core.TypeExpense
		s.State = StateEnteringAmount
		return Reply{Text: msgAskExpenseAmount, RemoveKeyboard: true}
	case ButtonExit:
		e.endSession(chatID)
		return Reply{Text: msgGoodbye, RemoveKeyboard: true}
	default:
		return Reply{Text: msgInvalidOption, Keyboard: mainMenuKeyboard}
	}
}

func (e *Engine) enterAmount(s *Session, text string) Reply {
	cents, err := core.ParseAmountCents(text)
	if err != nil {
		if errors.Is(err, core.ErrNonPositiveAmount) {
			return Reply{Text: msgNonPositive, RemoveKeyboard: true}
		}
		return Reply{Text: msgInvalidAmount, RemoveKeyboard: true}
	}
	s.AmountCents = cents
	s.State = StateEnteringDescription
	return Reply{Text: msgAskDescription, RemoveKeyboard: true}
}

func (e *Engine) enterDescription(s *Session, text string) Reply {
	s.Description = text
	s.State = StateChoosingCategory
	return Reply{Text: msgAskCategory, Keyboard: core.CategoryButtonsFor(s.Type)}
}

func (e *Engine) chooseCategory(ctx context.Context, chatID int64, s *Session, text string) Reply {
	choice := core.MatchCategory(s.Type, text)
	if !choice.Recognized {
		slog.Info("Unrecognized category stored verbatim",
			log.FieldChatID, chatID, log.FieldCategory, choice.Label)
	}
	s.Category = choice.Label

	tx := core.Transaction{
		Type:        s.Type,
		Amount:      core.Money{Cents: s.AmountCents},
		Description: s.Description,
		Category:    s.Category,
	}

	err := e.recorder.Record(ctx, tx)

	// The session advances and its data is cleared whether or not the
	// store was reachable.
	label := typeLabel(s.Type)
	amount := core.Money{Cents: s.AmountCents}.Reais()
	description := s.Description
	category := s.Category
	s.resetData()
	s.State = StatePostSubmitMenu

	if err != nil {
		slog.Error("Transaction record failed", log.FieldChatID, chatID, log.FieldError, err)
		return Reply{
			Text:     msgRecordFailed + "\n\n" + msgWhatNext,
			Keyboard: finalMenuKeyboard,
		}
	}

	text = fmt.Sprintf(
		"✅ %s registrada com sucesso!\n\n💰 Valor: R$ %.2f\n📝 Descrição: %s\n📂 Categoria: %s\n\n%s",
		label, amount, description, category, msgWhatNext,
	)
	return Reply{Text: text, Keyboard: finalMenuKeyboard}
}

func (e *Engine) postSubmitMenu(chatID int64, s *Session, text string) Reply {
	switch text {
	case ButtonNewTransaction:
		s.State = StateChoosingType
		return Reply{Text: msgChoose, Keyboard: mainMenuKeyboard}
	case ButtonFinish:
		e.endSession(chatID)
		return Reply{Text: msgGoodbye, RemoveKeyboard: true}
	default:
		return Reply{Text: msgInvalidOption, Keyboard: finalMenuKeyboard}
	}
}

func (e *Engine) endSession(chatID int64) {
	e.mu.Lock()
	delete(e.sessions, chatID)
	e.mu.Unlock()
	slog.Info("Session ended", log.FieldChatID, chatID)
}
