// Package storage implements ledger.Store on SQLite. The schema is owned by
// the embedded golang-migrate files; dates are stored as "YYYY-MM-DD" text
// and amounts as integer cents.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tally/internal/core"
	"tally/internal/ledger"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadExpenses returns every expense in insertion order so derived period
// buckets list records as they arrived.
func (r *SQLiteRepository) LoadExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tx_date, amount_cents, description, category FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			rawDate string
			rawCat  string
		)
		if err := rows.Scan(&e.ID, &rawDate, &e.Amount.Cents, &e.Description, &rawCat); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		e.Category = core.Category(rawCat)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) LoadIncomes(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tx_date, amount_cents, description FROM incomes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query incomes: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var (
			in      core.Income
			rawDate string
		)
		if err := rows.Scan(&in.ID, &rawDate, &in.Amount.Cents, &in.Description); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		if in.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, tx_date, amount_cents, description, category) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date.Format(dateLayout), e.Amount.Cents, e.Description, string(e.Category))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category),
		"date", e.Date.Format(dateLayout))
	return nil
}

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (id, tx_date, amount_cents, description) VALUES (?, ?, ?, ?)`,
		in.ID, in.Date.Format(dateLayout), in.Amount.Cents, in.Description)
	if err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	slog.InfoContext(ctx, "Income saved",
		"id", in.ID,
		"amount_cents", in.Amount.Cents,
		"date", in.Date.Format(dateLayout))
	return nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET tx_date = ?, amount_cents = ?, description = ?, category = ? WHERE id = ?`,
		e.Date.Format(dateLayout), e.Amount.Cents, e.Description, string(e.Category), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res, "expense", e.ID)
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, in core.Income) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE incomes SET tx_date = ?, amount_cents = ?, description = ? WHERE id = ?`,
		in.Date.Format(dateLayout), in.Amount.Cents, in.Description, in.ID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return requireRow(res, "income", in.ID)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res, "expense", id)
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return requireRow(res, "income", id)
}

func (r *SQLiteRepository) LoadClosedPeriods(ctx context.Context) ([]core.PeriodKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT year, month FROM closed_periods`)
	if err != nil {
		return nil, fmt.Errorf("query closed periods: %w", err)
	}
	defer rows.Close()

	var out []core.PeriodKey
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("scan closed period: %w", err)
		}
		out = append(out, core.PeriodKey{Year: year, Month: time.Month(month)})
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveClosedPeriod(ctx context.Context, key core.PeriodKey) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO closed_periods (year, month) VALUES (?, ?) ON CONFLICT (year, month) DO NOTHING`,
		key.Year, int(key.Month))
	if err != nil {
		return fmt.Errorf("insert closed period: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadAppState(ctx context.Context) (ledger.AppState, error) {
	var (
		st      ledger.AppState
		enabled int
		rawLast sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT auto_backup_enabled, last_backup_at FROM app_state WHERE id = 1`).
		Scan(&enabled, &rawLast)
	if err != nil {
		return ledger.AppState{}, fmt.Errorf("query app state: %w", err)
	}
	st.AutoBackupEnabled = enabled != 0
	if rawLast.Valid {
		t, err := time.Parse(time.RFC3339, rawLast.String)
		if err != nil {
			return ledger.AppState{}, fmt.Errorf("parse last backup time %q: %w", rawLast.String, err)
		}
		st.LastBackupAt = &t
	}
	return st, nil
}

func (r *SQLiteRepository) SaveAppState(ctx context.Context, st ledger.AppState) error {
	var rawLast any
	if st.LastBackupAt != nil {
		rawLast = st.LastBackupAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE app_state SET auto_backup_enabled = ?, last_backup_at = ? WHERE id = 1`,
		boolToInt(st.AutoBackupEnabled), rawLast)
	if err != nil {
		return fmt.Errorf("update app state: %w", err)
	}
	return nil
}

func parseDate(raw string) (core.Date, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return core.Date{Time: t}, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ledger.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
