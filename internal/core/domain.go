package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar day. The time-of-day component is normalized to
	// midnight UTC by NewDate; period membership is derived from it.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single spending record. A persisted expense always has a
	// positive amount, a non-empty description and a known category.
	Expense struct {
		ID          string
		Date        Date
		Amount      Money
		Description string
		Category    Category
	}

	// Income is a single earning record.
	Income struct {
		ID          string
		Date        Date
		Amount      Money
		Description string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidInput     = errors.New("invalid input")
)

const maxDescriptionLen = 200

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func validateDescription(desc string) error {
	if len(strings.TrimSpace(desc)) == 0 {
		return ErrEmptyDescription
	}
	if len(desc) > maxDescriptionLen {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := validateDescription(e.Description); err != nil {
		return err
	}
	return e.Category.Validate()
}

func (in Income) Validate() error {
	if err := in.Date.Validate(); err != nil {
		return err
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

// Transaction is the read-side view shared by expenses and incomes.
// Aggregation functions operate on it and never mutate anything.
type Transaction interface {
	TransactionID() string
	When() Date
	Value() Money
}

func (e Expense) TransactionID() string { return e.ID }
func (e Expense) When() Date            { return e.Date }
func (e Expense) Value() Money          { return e.Amount }

func (in Income) TransactionID() string { return in.ID }
func (in Income) When() Date            { return in.Date }
func (in Income) Value() Money          { return in.Amount }
