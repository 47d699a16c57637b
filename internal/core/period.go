package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodKey identifies a calendar month. It is always derived from a
// transaction's current date and never stored alongside the transaction, so
// editing a date moves the record between buckets with no migration step.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the month bucket a date belongs to.
func PeriodOf(d Date) PeriodKey {
	return PeriodKey{Year: d.Time.Year(), Month: d.Time.Month()}
}

// String renders the key as "2024-11".
func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// ParsePeriodKey parses the "YYYY-MM" form produced by String.
func ParsePeriodKey(s string) (PeriodKey, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return PeriodKey{}, fmt.Errorf("%w: period %q", ErrInvalidInput, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return PeriodKey{}, fmt.Errorf("%w: period year %q", ErrInvalidInput, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return PeriodKey{}, fmt.Errorf("%w: period month %q", ErrInvalidInput, s)
	}
	return PeriodKey{Year: year, Month: time.Month(month)}, nil
}

// Days returns the number of calendar days in the month.
func (k PeriodKey) Days() int {
	// Day zero of the next month is the last day of this one.
	return time.Date(k.Year, k.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Before reports whether k is an earlier month than o.
func (k PeriodKey) Before(o PeriodKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Start returns the first day of the month.
func (k PeriodKey) Start() Date {
	return NewDate(k.Year, k.Month, 1)
}
