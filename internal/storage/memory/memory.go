// Package memory is an in-memory ledger.Store used by tests and the default
// development backend. Insertion order is preserved so period buckets list
// records in arrival order, matching the SQLite repository.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/core"
	"tally/internal/ledger"
)

type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	incomes  []core.Income
	closed   []core.PeriodKey
	appState ledger.AppState

	// FailWith, when set, is returned by every mutating call. Lets tests
	// exercise the engine's fatal persistence-error path.
	FailWith error
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadExpenses(context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) LoadIncomes(context.Context) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Income(nil), s.incomes...), nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) CreateIncome(_ context.Context, in core.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.incomes = append(s.incomes, in)
	return nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", e.ID, ledger.ErrNotFound)
}

func (s *Store) UpdateIncome(_ context.Context, in core.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for i := range s.incomes {
		if s.incomes[i].ID == in.ID {
			s.incomes[i] = in
			return nil
		}
	}
	return fmt.Errorf("income %s: %w", in.ID, ledger.ErrNotFound)
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, ledger.ErrNotFound)
}

func (s *Store) DeleteIncome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for i := range s.incomes {
		if s.incomes[i].ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("income %s: %w", id, ledger.ErrNotFound)
}

func (s *Store) LoadClosedPeriods(context.Context) ([]core.PeriodKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PeriodKey(nil), s.closed...), nil
}

func (s *Store) SaveClosedPeriod(_ context.Context, key core.PeriodKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for _, k := range s.closed {
		if k == key {
			return nil
		}
	}
	s.closed = append(s.closed, key)
	return nil
}

func (s *Store) LoadAppState(context.Context) (ledger.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appState, nil
}

func (s *Store) SaveAppState(_ context.Context, st ledger.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.appState = st
	return nil
}
