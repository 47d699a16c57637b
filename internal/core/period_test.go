package core

import (
	"testing"
	"time"
)

func TestPeriodOf(t *testing.T) {
	d := NewDate(2024, time.November, 15)
	key := PeriodOf(d)
	if key != (PeriodKey{Year: 2024, Month: time.November}) {
		t.Fatalf("PeriodOf = %v", key)
	}
	if key.String() != "2024-11" {
		t.Fatalf("String = %q, want 2024-11", key.String())
	}
}

func TestParsePeriodKey(t *testing.T) {
	cases := []struct {
		in      string
		want    PeriodKey
		wantErr bool
	}{
		{"2024-11", PeriodKey{2024, time.November}, false},
		{"2025-01", PeriodKey{2025, time.January}, false},
		{" 2024-7", PeriodKey{2024, time.July}, false},
		{"2024", PeriodKey{}, true},
		{"2024-13", PeriodKey{}, true},
		{"2024-0", PeriodKey{}, true},
		{"abcd-11", PeriodKey{}, true},
	}
	for _, tc := range cases {
		got, err := ParsePeriodKey(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePeriodKey(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePeriodKey(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePeriodKey(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPeriodDays(t *testing.T) {
	cases := []struct {
		key  PeriodKey
		want int
	}{
		{PeriodKey{2024, time.November}, 30},
		{PeriodKey{2024, time.December}, 31},
		{PeriodKey{2024, time.February}, 29}, // leap year
		{PeriodKey{2025, time.February}, 28},
	}
	for _, tc := range cases {
		if got := tc.key.Days(); got != tc.want {
			t.Errorf("%v.Days() = %d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestPeriodBefore(t *testing.T) {
	nov := PeriodKey{2024, time.November}
	dec := PeriodKey{2024, time.December}
	jan := PeriodKey{2025, time.January}
	if !nov.Before(dec) || !dec.Before(jan) || jan.Before(nov) {
		t.Fatalf("ordering broken: nov<dec<jan expected")
	}
	if nov.Before(nov) {
		t.Fatalf("a key must not be before itself")
	}
}
