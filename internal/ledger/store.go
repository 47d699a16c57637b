package ledger

import (
	"context"
	"errors"
	"time"

	"tally/internal/core"
)

// AppState is the small settings blob persisted across process lifetimes.
// It is created on first run and mutated in place afterwards.
type AppState struct {
	AutoBackupEnabled bool
	LastBackupAt      *time.Time
}

// Store is the durable persistence boundary the engine is constructed with.
// Failures from it are unrecoverable at the engine level: they propagate to
// the caller wrapped, never retried or masked.
type Store interface {
	LoadExpenses(ctx context.Context) ([]core.Expense, error)
	LoadIncomes(ctx context.Context) ([]core.Income, error)

	CreateExpense(ctx context.Context, e core.Expense) error
	CreateIncome(ctx context.Context, in core.Income) error
	UpdateExpense(ctx context.Context, e core.Expense) error
	UpdateIncome(ctx context.Context, in core.Income) error
	DeleteExpense(ctx context.Context, id string) error
	DeleteIncome(ctx context.Context, id string) error

	LoadClosedPeriods(ctx context.Context) ([]core.PeriodKey, error)
	SaveClosedPeriod(ctx context.Context, key core.PeriodKey) error

	LoadAppState(ctx context.Context) (AppState, error)
	SaveAppState(ctx context.Context, st AppState) error
}

var (
	// ErrPeriodClosed rejects any mutation touching a closed month. There is
	// no reopening path; callers must target a different period.
	ErrPeriodClosed = errors.New("period closed")

	// ErrNotFound is returned for update/delete of an unknown transaction.
	ErrNotFound = errors.New("transaction not found")
)
