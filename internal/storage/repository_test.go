package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	e := core.Expense{
		ID:          "e-1",
		Date:        core.NewDate(2024, time.November, 15),
		Amount:      core.Money{Cents: 50000},
		Description: "Groceries",
		Category:    core.CategoryFood,
	}
	if err := repo.CreateExpense(ctx, e); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	got, err := repo.LoadExpenses(ctx)
	if err != nil {
		t.Fatalf("LoadExpenses: %v", err)
	}
	if len(got) != 1 || got[0] != e {
		t.Fatalf("loaded %+v, want %+v", got, e)
	}

	e.Amount.Cents = 60000
	e.Date = core.NewDate(2024, time.December, 1)
	if err := repo.UpdateExpense(ctx, e); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	got, _ = repo.LoadExpenses(ctx)
	if got[0] != e {
		t.Fatalf("after update loaded %+v, want %+v", got[0], e)
	}

	if err := repo.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	got, _ = repo.LoadExpenses(ctx)
	if len(got) != 0 {
		t.Fatalf("expense not deleted")
	}
}

func TestIncomeRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	in := core.Income{
		ID:          "i-1",
		Date:        core.NewDate(2024, time.November, 1),
		Amount:      core.Money{Cents: 200000},
		Description: "Salary",
	}
	if err := repo.CreateIncome(ctx, in); err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}
	got, err := repo.LoadIncomes(ctx)
	if err != nil {
		t.Fatalf("LoadIncomes: %v", err)
	}
	if len(got) != 1 || got[0] != in {
		t.Fatalf("loaded %+v, want %+v", got, in)
	}
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		e := core.Expense{
			ID:          id,
			Date:        core.NewDate(2024, time.November, 10),
			Amount:      core.Money{Cents: 100},
			Description: "x",
			Category:    core.CategoryBills,
		}
		if err := repo.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense(%s): %v", id, err)
		}
	}

	got, err := repo.LoadExpenses(ctx)
	if err != nil {
		t.Fatalf("LoadExpenses: %v", err)
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	err := repo.UpdateExpense(ctx, core.Expense{
		ID:          "ghost",
		Date:        core.NewDate(2024, time.November, 1),
		Amount:      core.Money{Cents: 1},
		Description: "x",
		Category:    core.CategoryBills,
	})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := repo.DeleteIncome(ctx, "ghost"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestClosedPeriodPersistence(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	key := core.PeriodKey{Year: 2024, Month: time.November}

	if err := repo.SaveClosedPeriod(ctx, key); err != nil {
		t.Fatalf("SaveClosedPeriod: %v", err)
	}
	// Saving twice must not fail or duplicate.
	if err := repo.SaveClosedPeriod(ctx, key); err != nil {
		t.Fatalf("repeat SaveClosedPeriod: %v", err)
	}

	keys, err := repo.LoadClosedPeriods(ctx)
	if err != nil {
		t.Fatalf("LoadClosedPeriods: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("loaded %v, want [%v]", keys, key)
	}
}

func TestAppStateRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	// First run: defaults.
	st, err := repo.LoadAppState(ctx)
	if err != nil {
		t.Fatalf("LoadAppState: %v", err)
	}
	if st.AutoBackupEnabled || st.LastBackupAt != nil {
		t.Fatalf("unexpected initial state: %+v", st)
	}

	at := time.Date(2024, time.November, 25, 8, 30, 0, 0, time.UTC)
	st.AutoBackupEnabled = true
	st.LastBackupAt = &at
	if err := repo.SaveAppState(ctx, st); err != nil {
		t.Fatalf("SaveAppState: %v", err)
	}

	got, err := repo.LoadAppState(ctx)
	if err != nil {
		t.Fatalf("LoadAppState: %v", err)
	}
	if !got.AutoBackupEnabled {
		t.Fatalf("auto backup flag lost")
	}
	if got.LastBackupAt == nil || !got.LastBackupAt.Equal(at) {
		t.Fatalf("LastBackupAt = %v, want %v", got.LastBackupAt, at)
	}
}
