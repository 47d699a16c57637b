package backup

import (
	"encoding/json"
	"time"

	"tally/internal/core"
)

// Snapshot is the wire form of the full ledger state shipped to the cloud.
type Snapshot struct {
	TakenAt       time.Time        `json:"taken_at"`
	Expenses      []ExpenseRecord  `json:"expenses"`
	Incomes       []IncomeRecord   `json:"incomes"`
	ClosedPeriods []string         `json:"closed_periods"`
}

type ExpenseRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type IncomeRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

const snapshotDateLayout = "2006-01-02"

// NewSnapshot freezes ledger state into its wire form.
func NewSnapshot(expenses []core.Expense, incomes []core.Income, closed []core.PeriodKey, at time.Time) Snapshot {
	s := Snapshot{
		TakenAt:  at.UTC(),
		Expenses: make([]ExpenseRecord, 0, len(expenses)),
		Incomes:  make([]IncomeRecord, 0, len(incomes)),
	}
	for _, e := range expenses {
		s.Expenses = append(s.Expenses, ExpenseRecord{
			ID:          e.ID,
			Date:        e.Date.Format(snapshotDateLayout),
			AmountCents: e.Amount.Cents,
			Description: e.Description,
			Category:    string(e.Category),
		})
	}
	for _, in := range incomes {
		s.Incomes = append(s.Incomes, IncomeRecord{
			ID:          in.ID,
			Date:        in.Date.Format(snapshotDateLayout),
			AmountCents: in.Amount.Cents,
			Description: in.Description,
		})
	}
	for _, k := range closed {
		s.ClosedPeriods = append(s.ClosedPeriods, k.String())
	}
	return s
}

func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot, used by restore tooling and tests.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
