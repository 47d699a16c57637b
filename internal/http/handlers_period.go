package http

import (
	"net/http"

	"tally/internal/core"
)

type closePeriodResponse struct {
	Period string `json:"period"`
	Closed bool   `json:"closed"`
}

// handleClosePeriod seals a month. Closing an already closed month is a
// no-op and still reports success.
func (s *Server) handleClosePeriod(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParsePeriodKey(r.PathValue("key"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation", "period must be YYYY-MM")
		return
	}

	if err := s.engine.CloseMonth(r.Context(), key); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, closePeriodResponse{Period: key.String(), Closed: true})
}

type periodSummaryResponse struct {
	Period        string            `json:"period"`
	Closed        bool              `json:"closed"`
	SpentCents    int64             `json:"spent_cents"`
	EarnedCents   int64             `json:"earned_cents"`
	AvgDailyCents *int64            `json:"avg_daily_spend_cents"`
	Expenses      []expenseResponse `json:"expenses"`
	Incomes       []incomeResponse  `json:"incomes"`
}

// handleGetPeriod returns a month summary. The average daily spend is null
// when the month has no spending to average.
func (s *Server) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParsePeriodKey(r.PathValue("key"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation", "period must be YYYY-MM")
		return
	}

	cacheKey := r.URL.RequestURI()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	expenses := s.engine.ExpensesForPeriod(key)
	incomes := s.engine.IncomesForPeriod(key)

	resp := periodSummaryResponse{
		Period:      key.String(),
		Closed:      s.engine.IsMonthClosed(key),
		SpentCents:  core.Total(expenses).Cents,
		EarnedCents: core.Total(incomes).Cents,
		Expenses:    make([]expenseResponse, 0, len(expenses)),
		Incomes:     make([]incomeResponse, 0, len(incomes)),
	}
	if avg, ok := core.AverageDailySpending(key, expenses); ok {
		cents := avg.Cents
		resp.AvgDailyCents = &cents
	}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
	}
	for _, in := range incomes {
		resp.Incomes = append(resp.Incomes, toIncomeResponse(in))
	}

	s.cacheAndWrite(w, r, cacheKey, resp)
}
