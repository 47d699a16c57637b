package http

import (
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTransaction(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := req.parseDate()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	cents, err := req.parseAmount()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	exp, err := s.engine.AddExpense(r.Context(), date, cents, req.Description, req.Category)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toExpenseResponse(exp))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	req, err := decodeTransaction(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := req.parseDate()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	cents, err := req.parseAmount()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	exp, err := s.engine.UpdateExpense(r.Context(), id, date, cents, req.Description, req.Category)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, toExpenseResponse(exp))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

type periodGroupResponse struct {
	Period     string `json:"period"`
	TotalCents int64  `json:"total_cents"`
	Count      int    `json:"count"`
}

type expenseListResponse struct {
	Groups   []periodGroupResponse `json:"groups"`
	Expenses []expenseResponse     `json:"expenses"`
}

// handleListExpenses returns expenses grouped by month, newest month first.
// An optional year query narrows the listing to a single year.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	cacheKey := r.URL.RequestURI()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	expenses, _ := s.engine.Snapshot()
	groups := core.GroupByPeriod(expenses)

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "validation", "year must be a number")
			return
		}
		groups = core.FilterByYear(groups, year)
	}

	resp := expenseListResponse{
		Groups:   make([]periodGroupResponse, 0, len(groups)),
		Expenses: make([]expenseResponse, 0, len(expenses)),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, periodGroupResponse{
			Period:     g.Key.String(),
			TotalCents: core.Total(g.Items).Cents,
			Count:      len(g.Items),
		})
		for _, e := range g.Items {
			resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
		}
	}

	s.cacheAndWrite(w, r, cacheKey, resp)
}
