package http

import (
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
)

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
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

	in, err := s.engine.AddIncome(r.Context(), date, cents, req.Description)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toIncomeResponse(in))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
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

	in, err := s.engine.UpdateIncome(r.Context(), id, date, cents, req.Description)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, toIncomeResponse(in))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteIncome(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

type incomeListResponse struct {
	Groups  []periodGroupResponse `json:"groups"`
	Incomes []incomeResponse      `json:"incomes"`
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	cacheKey := r.URL.RequestURI()
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	_, incomes := s.engine.Snapshot()
	groups := core.GroupByPeriod(incomes)

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "validation", "year must be a number")
			return
		}
		groups = core.FilterByYear(groups, year)
	}

	resp := incomeListResponse{
		Groups:  make([]periodGroupResponse, 0, len(groups)),
		Incomes: make([]incomeResponse, 0, len(incomes)),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, periodGroupResponse{
			Period:     g.Key.String(),
			TotalCents: core.Total(g.Items).Cents,
			Count:      len(g.Items),
		})
		for _, in := range g.Items {
			resp.Incomes = append(resp.Incomes, toIncomeResponse(in))
		}
	}

	s.cacheAndWrite(w, r, cacheKey, resp)
}
