package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
)

// AmountText carries a monetary amount as decimal text. It accepts both a
// JSON string ("12,50") and a bare number (12.50); either way the value stays
// textual until it is converted to cents, so an absent amount is
// distinguishable from zero.
type AmountText string

func (a *AmountText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	*a = AmountText(b)
	return nil
}

// transactionRequest is the body of expense and income writes. Incomes
// ignore the category field.
type transactionRequest struct {
	Date        string     `json:"date"`
	Amount      AmountText `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
}

func decodeTransaction(r *http.Request) (transactionRequest, error) {
	var req transactionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return transactionRequest{}, fmt.Errorf("%w: malformed request body", core.ErrInvalidInput)
	}
	req.Description = sanitizeInput(req.Description)
	req.Category = sanitizeInput(req.Category)
	return req, nil
}

func (req transactionRequest) parseDate() (core.Date, error) {
	s := strings.TrimSpace(req.Date)
	if s == "" {
		return core.Date{}, fmt.Errorf("%w: missing date", core.ErrInvalidInput)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: date must be YYYY-MM-DD", core.ErrInvalidInput)
	}
	return core.DateOf(t), nil
}

func (req transactionRequest) parseAmount() (int64, error) {
	s := strings.TrimSpace(string(req.Amount))
	if s == "" {
		return 0, fmt.Errorf("%w: missing amount", core.ErrInvalidAmount)
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidAmount, err)
	}
	return cents, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
