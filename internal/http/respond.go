package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/ledger"
)

// errorBody is the JSON error envelope. Kind is a stable machine-readable
// label; message is for humans.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

// writeRawJSON writes pre-marshaled JSON, used for cached report bodies.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// cacheAndWrite marshals v, stores the body for later reads and writes it out.
func (s *Server) cacheAndWrite(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(r.Context(), "Response encoding failed", "error", err, "url", r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	s.reportCache.Set(key, body)
	writeRawJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	writeJSON(w, status, errorBody{Kind: kind, Message: message})
}

// writeDomainError translates engine errors to HTTP statuses. Validation
// failures are the caller's fault, a closed period is a conflict, unknown IDs
// are missing resources, and anything else is a storage fault.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, ledger.ErrPeriodClosed):
		writeError(w, r, http.StatusConflict, "period_closed", err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "internal", "internal error")
	}
}

const dateLayout = "2006-01-02"

type expenseResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type incomeResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format(dateLayout),
		Amount:      e.Amount.String(),
		AmountCents: e.Amount.Cents,
		Description: e.Description,
		Category:    string(e.Category),
	}
}

func toIncomeResponse(in core.Income) incomeResponse {
	return incomeResponse{
		ID:          in.ID,
		Date:        in.Date.Format(dateLayout),
		Amount:      in.Amount.String(),
		AmountCents: in.Amount.Cents,
		Description: in.Description,
	}
}
