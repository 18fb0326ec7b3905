package api

import (
	"net/http"
)

type currentWeekResponse struct {
	Week int `json:"week"`
}

// currentWeek handles GET /api/v1/week/current
func (s *Server) currentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := s.services.Periods.CurrentWeek(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, currentWeekResponse{Week: week})
}

// listWeeklyLedgers handles GET /api/v1/ledgers
func (s *Server) listWeeklyLedgers(w http.ResponseWriter, r *http.Request) {
	ledgers, err := s.services.Ledgers.ListWeeklyLedgers(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ledgers)
}

// getWeeklyLedger handles GET /api/v1/ledgers/{week}
func (s *Server) getWeeklyLedger(w http.ResponseWriter, r *http.Request) {
	week, err := pathWeek(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ledger, err := s.services.Ledgers.GetWeeklyLedger(r.Context(), userIDFrom(r.Context()), week)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// weekLeaderboard handles GET /api/v1/weeks/{week}/leaderboard
func (s *Server) weekLeaderboard(w http.ResponseWriter, r *http.Request) {
	week, err := pathWeek(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := s.services.Ledgers.WeekLeaderboard(r.Context(), week, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
