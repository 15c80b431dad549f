// Package web serves the operational HTTP surface: a health check (used by
// the hosting platform) and a small read API over the local journal.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/storage"
)

// Journal read surface used by the handlers.
type (
	TransactionLister interface {
		ListRecent(ctx context.Context, limit int) ([]storage.Entry, error)
	}

	MonthSummarizer interface {
		MonthTotals(ctx context.Context, key core.MonthKey) (storage.MonthTotals, error)
	}
)

type Server struct {
	lister     TransactionLister
	summarizer MonthSummarizer
}

// NewServer builds the HTTP server. lister and summarizer may be nil when
// no journal is configured; the read API then answers 503.
func NewServer(addr string, lister TransactionLister, summarizer MonthSummarizer) *http.Server {
	s := &Server{lister: lister, summarizer: summarizer}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(log.RequestLogger(log.ForComponent(log.ComponentWeb)))
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/transactions", s.handleTransactions)
	r.Get("/api/summary/{year}/{month}", s.handleSummary)

	return &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// requestID tags every request for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "finbot",
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if s.lister == nil {
		writeError(w, http.StatusServiceUnavailable, "journal not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := s.lister.ListRecent(r.Context(), limit)
	if err != nil {
		slog.Error("List transactions failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": entries})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		writeError(w, http.StatusServiceUnavailable, "journal not configured")
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	key := core.MonthKey{Year: year, Month: month}
	totals, err := s.summarizer.MonthTotals(r.Context(), key)
	if err != nil {
		slog.Error("Month summary failed", log.FieldMonthYear, key.String(), log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month_year":    key.String(),
		"income_cents":  totals.IncomeCents,
		"expense_cents": totals.ExpenseCents,
		"balance_cents": totals.BalanceCents(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Encode response failed", log.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
