package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"tally/internal/core"
)

func TestAmountTextUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string with comma", `{"amount":"12,50"}`, "12,50"},
		{"string with dot", `{"amount":"12.50"}`, "12.50"},
		{"bare number", `{"amount":12.5}`, "12.5"},
		{"bare integer", `{"amount":7}`, "7"},
		{"absent", `{}`, ""},
		{"empty string", `{"amount":""}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req transactionRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if string(req.Amount) != tt.want {
				t.Errorf("Amount = %q; want %q", req.Amount, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		wantCents int64
		wantErr   bool
	}{
		{"comma decimal", "12,50", 1250, false},
		{"dot decimal", "12.50", 1250, false},
		{"integer", "7", 700, false},
		{"empty is not zero", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := transactionRequest{Amount: AmountText(tt.amount)}
			cents, err := req.parseAmount()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, core.ErrInvalidAmount) {
					t.Errorf("error %v is not ErrInvalidAmount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cents != tt.wantCents {
				t.Errorf("cents = %d; want %d", cents, tt.wantCents)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	req := transactionRequest{Date: "2024-11-05"}
	d, err := req.parseDate()
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 11 || d.Day() != 5 {
		t.Errorf("date = %v", d)
	}

	for _, bad := range []string{"", "2024-11", "05/11/2024", "yesterday"} {
		req := transactionRequest{Date: bad}
		if _, err := req.parseDate(); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("parseDate(%q) error = %v; want ErrInvalidInput", bad, err)
		}
	}
}

func TestDecodeTransactionSanitizes(t *testing.T) {
	r := httptest.NewRequest("POST", "/expenses",
		strings.NewReader("{\"description\":\"  caf\\u00e9\\u0000 visit  \",\"category\":\" Bills \"}"))
	req, err := decodeTransaction(r)
	if err != nil {
		t.Fatalf("decodeTransaction: %v", err)
	}
	if req.Description != "café visit" {
		t.Errorf("Description = %q", req.Description)
	}
	if req.Category != "Bills" {
		t.Errorf("Category = %q", req.Category)
	}
}

func TestRateLimiterAllows60PerMinute(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request 61 should be rejected")
	}
	// Other clients are unaffected.
	if !rl.allow("10.0.0.2") {
		t.Error("fresh client should be allowed")
	}
}
