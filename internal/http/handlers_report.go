package http

import (
	"net/http"
	"time"

	"tally/internal/backup"
	"tally/internal/core"
)

type netSavingsResponse struct {
	Range        string `json:"range"`
	SavingsCents int64  `json:"savings_cents"`
	Savings      string `json:"savings"`
}

// handleNetSavings reports income minus spending over a trailing window
// anchored at the current moment.
func (s *Server) handleNetSavings(w http.ResponseWriter, r *http.Request) {
	rng, err := core.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation", "range must be one of day, week, month, sixMonths, year")
		return
	}

	cacheKey := r.URL.RequestURI()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	expenses, incomes := s.engine.Snapshot()
	net := core.NetSavings(incomes, expenses, rng, time.Now())

	s.cacheAndWrite(w, r, cacheKey, netSavingsResponse{
		Range:        string(rng),
		SavingsCents: net.Cents,
		Savings:      net.String(),
	})
}

type categoryRowResponse struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
}

type categoryBreakdownResponse struct {
	Period     string                `json:"period,omitempty"`
	Categories []categoryRowResponse `json:"categories"`
}

// handleCategoryBreakdown ranks categories by spend, optionally scoped to a
// single month via the period query parameter.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	cacheKey := r.URL.RequestURI()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	var expenses []core.Expense
	resp := categoryBreakdownResponse{}

	if v := r.URL.Query().Get("period"); v != "" {
		key, err := core.ParsePeriodKey(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "validation", "period must be YYYY-MM")
			return
		}
		resp.Period = key.String()
		expenses = s.engine.ExpensesForPeriod(key)
	} else {
		expenses, _ = s.engine.Snapshot()
	}

	rows := core.CategoryBreakdown(expenses)
	resp.Categories = make([]categoryRowResponse, 0, len(rows))
	for _, row := range rows {
		resp.Categories = append(resp.Categories, categoryRowResponse{
			Category:   string(row.Category),
			TotalCents: row.Total.Cents,
		})
	}

	s.cacheAndWrite(w, r, cacheKey, resp)
}

// handleExport streams the full ledger in the same wire form that backups
// ship to cloud storage.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	expenses, incomes := s.engine.Snapshot()
	snap := backup.NewSnapshot(expenses, incomes, s.engine.ClosedPeriods(), time.Now())

	body, err := snap.Marshal()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="ledger-export.json"`)
	writeRawJSON(w, http.StatusOK, body)
}
