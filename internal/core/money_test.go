package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12.344", 1234, false}, // rounds down
		{"12.345", 1235, false}, // rounds up
		{"500", 50000, false},
		{".5", 50, false},
		{" 7 ", 700, false},
		{"", 0, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"12.x", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDecimalToCents(%q) expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{150000, "1500.00"},
		{1234, "12.34"},
		{5, "0.05"},
		{-325, "-3.25"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 200000}
	b := Money{Cents: 50000}
	if got := a.Sub(b); got.Cents != 150000 {
		t.Fatalf("Sub = %d, want 150000", got.Cents)
	}
	if got := a.Add(b); got.Cents != 250000 {
		t.Fatalf("Add = %d, want 250000", got.Cents)
	}
	if got := (Money{Cents: 12550}).Units(); got != 125.50 {
		t.Fatalf("Units = %v, want 125.50", got)
	}
}
