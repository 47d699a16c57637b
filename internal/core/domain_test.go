package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, time.January, 1), true},
		{NewDate(2025, time.December, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2025, time.January, 1),
		Description: "ok",
		Amount:      Money{Cents: 100},
		Category:    CategoryFood,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{
			name: "empty description",
			e:    Expense{Date: NewDate(2025, time.January, 1), Description: "   ", Amount: Money{Cents: 1}, Category: CategoryBills},
			want: ErrEmptyDescription,
		},
		{
			name: "zero amount",
			e:    Expense{Date: NewDate(2025, time.January, 1), Description: "a", Amount: Money{}, Category: CategoryBills},
			want: ErrInvalidAmount,
		},
		{
			name: "empty category",
			e:    Expense{Date: NewDate(2025, time.January, 1), Description: "a", Amount: Money{Cents: 1}},
			want: ErrEmptyCategory,
		},
		{
			name: "unknown category",
			e:    Expense{Date: NewDate(2025, time.January, 1), Description: "a", Amount: Money{Cents: 1}, Category: "Snake Farming"},
			want: ErrInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	long := good
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for long description")
	}
}

func TestIncomeValidate(t *testing.T) {
	good := Income{Date: NewDate(2024, time.November, 1), Description: "Salary", Amount: Money{Cents: 200000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := Income{Date: NewDate(2024, time.November, 1), Description: "", Amount: Money{Cents: 1}}
	if err := bad.Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("got %v, want ErrEmptyDescription", err)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("  Food & Beverages "); err != nil || c != CategoryFood {
		t.Fatalf("got (%q, %v)", c, err)
	}
	if _, err := ParseCategory(""); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if _, err := ParseCategory("Astrology"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
