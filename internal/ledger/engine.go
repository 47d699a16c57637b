// Package ledger owns the transaction collection, the closed-period rule and
// the mutation/query API consumed by the HTTP and backup surfaces.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
)

// Engine serializes every mutation through one write lock so that the
// closure check and the store write of a mutation can never interleave with
// a concurrent CloseMonth. Reads take the read lock and return copies, so
// aggregate queries always observe a consistent snapshot.
type Engine struct {
	mu     sync.RWMutex
	store  Store
	closed *Registry

	expenses []core.Expense
	incomes  []core.Income
	appState AppState

	events notifier
}

// NewEngine loads the full ledger, the closed-period set and the app state
// from the store.
func NewEngine(ctx context.Context, store Store) (*Engine, error) {
	e := &Engine{
		store:  store,
		closed: NewRegistry(store),
	}

	var err error
	if e.expenses, err = store.LoadExpenses(ctx); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	if e.incomes, err = store.LoadIncomes(ctx); err != nil {
		return nil, fmt.Errorf("load incomes: %w", err)
	}
	if err = e.closed.Load(ctx); err != nil {
		return nil, err
	}
	if e.appState, err = store.LoadAppState(ctx); err != nil {
		return nil, fmt.Errorf("load app state: %w", err)
	}

	slog.Info("Ledger loaded",
		"expenses", len(e.expenses),
		"incomes", len(e.incomes),
		"closed_periods", len(e.closed.Keys()))
	return e, nil
}

// Subscribe registers a consumer of committed mutation events.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	return e.events.Subscribe(buffer)
}

// AddExpense validates, persists and mirrors a new expense. The category is
// raw text validated here against the closed set.
func (e *Engine) AddExpense(ctx context.Context, date core.Date, cents int64, description, category string) (core.Expense, error) {
	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.Expense{}, err
	}
	exp := core.Expense{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Description: description,
		Category:    cat,
	}
	if err := exp.Validate(); err != nil {
		return core.Expense{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := core.PeriodOf(date)
	if e.closed.IsClosed(key) {
		return core.Expense{}, fmt.Errorf("%w: %s", ErrPeriodClosed, key)
	}
	if err := e.store.CreateExpense(ctx, exp); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	e.expenses = append(e.expenses, exp)
	e.events.publish(Event{Kind: EventExpenseAdded, Period: key, ID: exp.ID, At: time.Now()})
	return exp, nil
}

// AddIncome is AddExpense minus the category.
func (e *Engine) AddIncome(ctx context.Context, date core.Date, cents int64, description string) (core.Income, error) {
	in := core.Income{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Description: description,
	}
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := core.PeriodOf(date)
	if e.closed.IsClosed(key) {
		return core.Income{}, fmt.Errorf("%w: %s", ErrPeriodClosed, key)
	}
	if err := e.store.CreateIncome(ctx, in); err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}
	e.incomes = append(e.incomes, in)
	e.events.publish(Event{Kind: EventIncomeAdded, Period: key, ID: in.ID, At: time.Now()})
	return in, nil
}

// UpdateExpense re-validates and replaces an existing expense. The mutation
// is rejected when either the stored date's period or the new date's period
// is closed: a record can neither be edited inside a frozen month nor moved
// into one. Period membership follows the new date immediately.
func (e *Engine) UpdateExpense(ctx context.Context, id string, date core.Date, cents int64, description, category string) (core.Expense, error) {
	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.Expense{}, err
	}
	next := core.Expense{
		ID:          id,
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Description: description,
		Category:    cat,
	}
	if err := next.Validate(); err != nil {
		return core.Expense{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.expenseIndex(id)
	if i < 0 {
		return core.Expense{}, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	if err := e.checkOpenForMove(core.PeriodOf(e.expenses[i].Date), core.PeriodOf(date)); err != nil {
		return core.Expense{}, err
	}
	if err := e.store.UpdateExpense(ctx, next); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	e.expenses[i] = next
	e.events.publish(Event{Kind: EventExpenseUpdated, Period: core.PeriodOf(date), ID: id, At: time.Now()})
	return next, nil
}

// UpdateIncome mirrors UpdateExpense for income records.
func (e *Engine) UpdateIncome(ctx context.Context, id string, date core.Date, cents int64, description string) (core.Income, error) {
	next := core.Income{
		ID:          id,
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Description: description,
	}
	if err := next.Validate(); err != nil {
		return core.Income{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.incomeIndex(id)
	if i < 0 {
		return core.Income{}, fmt.Errorf("%w: income %s", ErrNotFound, id)
	}
	if err := e.checkOpenForMove(core.PeriodOf(e.incomes[i].Date), core.PeriodOf(date)); err != nil {
		return core.Income{}, err
	}
	if err := e.store.UpdateIncome(ctx, next); err != nil {
		return core.Income{}, fmt.Errorf("update income: %w", err)
	}
	e.incomes[i] = next
	e.events.publish(Event{Kind: EventIncomeUpdated, Period: core.PeriodOf(date), ID: id, At: time.Now()})
	return next, nil
}

// DeleteExpense removes a record unless its current period is closed.
func (e *Engine) DeleteExpense(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.expenseIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	key := core.PeriodOf(e.expenses[i].Date)
	if e.closed.IsClosed(key) {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, key)
	}
	if err := e.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	e.expenses = append(e.expenses[:i], e.expenses[i+1:]...)
	e.events.publish(Event{Kind: EventExpenseDeleted, Period: key, ID: id, At: time.Now()})
	return nil
}

// DeleteIncome removes a record unless its current period is closed.
func (e *Engine) DeleteIncome(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.incomeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: income %s", ErrNotFound, id)
	}
	key := core.PeriodOf(e.incomes[i].Date)
	if e.closed.IsClosed(key) {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, key)
	}
	if err := e.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	e.incomes = append(e.incomes[:i], e.incomes[i+1:]...)
	e.events.publish(Event{Kind: EventIncomeDeleted, Period: key, ID: id, At: time.Now()})
	return nil
}

// CloseMonth freezes a period forever. Closing an already-closed period is a
// no-op and publishes nothing.
func (e *Engine) CloseMonth(ctx context.Context, key core.PeriodKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed, err := e.closed.Close(ctx, key)
	if err != nil {
		return err
	}
	if changed {
		slog.InfoContext(ctx, "Period closed", "period", key.String())
		e.events.publish(Event{Kind: EventMonthClosed, Period: key, At: time.Now()})
	}
	return nil
}

func (e *Engine) IsMonthClosed(key core.PeriodKey) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed.IsClosed(key)
}

// ClosedPeriods returns the closed set, for snapshots and status endpoints.
func (e *Engine) ClosedPeriods() []core.PeriodKey {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed.Keys()
}

// Snapshot returns consistent copies of both collections.
func (e *Engine) Snapshot() ([]core.Expense, []core.Income) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	expenses := make([]core.Expense, len(e.expenses))
	copy(expenses, e.expenses)
	incomes := make([]core.Income, len(e.incomes))
	copy(incomes, e.incomes)
	return expenses, incomes
}

// ExpensesForPeriod returns the period's expenses in arrival order.
func (e *Engine) ExpensesForPeriod(key core.PeriodKey) []core.Expense {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []core.Expense
	for _, exp := range e.expenses {
		if core.PeriodOf(exp.Date) == key {
			out = append(out, exp)
		}
	}
	return out
}

// IncomesForPeriod returns the period's incomes in arrival order.
func (e *Engine) IncomesForPeriod(key core.PeriodKey) []core.Income {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []core.Income
	for _, in := range e.incomes {
		if core.PeriodOf(in.Date) == key {
			out = append(out, in)
		}
	}
	return out
}

// AppState returns the current settings blob.
func (e *Engine) AppState() AppState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.appState
}

// SetAutoBackup persists the auto-backup toggle. Turning it on publishes
// EventBackupEnabled so the scheduler attempts a backup immediately.
func (e *Engine) SetAutoBackup(ctx context.Context, enabled bool) (AppState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasEnabled := e.appState.AutoBackupEnabled
	next := e.appState
	next.AutoBackupEnabled = enabled
	if err := e.store.SaveAppState(ctx, next); err != nil {
		return AppState{}, fmt.Errorf("save app state: %w", err)
	}
	e.appState = next
	if enabled && !wasEnabled {
		e.events.publish(Event{Kind: EventBackupEnabled, At: time.Now()})
	}
	return next, nil
}

// MarkBackupDone stamps the last successful backup time.
func (e *Engine) MarkBackupDone(ctx context.Context, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.appState
	next.LastBackupAt = &at
	if err := e.store.SaveAppState(ctx, next); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	e.appState = next
	return nil
}

// checkOpenForMove gates an update on both the record's stored period and
// its destination period. Caller holds the write lock.
func (e *Engine) checkOpenForMove(from, to core.PeriodKey) error {
	if e.closed.IsClosed(from) {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, from)
	}
	if from != to && e.closed.IsClosed(to) {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, to)
	}
	return nil
}

func (e *Engine) expenseIndex(id string) int {
	for i := range e.expenses {
		if e.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) incomeIndex(id string) int {
	for i := range e.incomes {
		if e.incomes[i].ID == id {
			return i
		}
	}
	return -1
}
