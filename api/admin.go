package api

import (
	"context"
	"net/http"
	"time"

	"sportsbook/models"
)

type settleWagerRequest struct {
	Won *bool `json:"won" validate:"required"`
}

type setPeriodRequest struct {
	LockTime time.Time `json:"lock_time" validate:"required"`
}

// settleWager handles POST /api/v1/admin/wagers/{wagerID}/settle
func (s *Server) settleWager(w http.ResponseWriter, r *http.Request) {
	wagerID, err := pathInt64(r, "wagerID")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req settleWagerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.services.Settlement.SettleWager(r.Context(), wagerID, *req.Won)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// listWeekWagers handles GET /api/v1/admin/weeks/{week}/wagers?status=
func (s *Server) listWeekWagers(w http.ResponseWriter, r *http.Request) {
	week, err := pathWeek(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var status *models.WagerStatus
	switch raw := models.WagerStatus(r.URL.Query().Get("status")); raw {
	case "":
	case models.WagerStatusPending, models.WagerStatusWon, models.WagerStatusLost:
		status = &raw
	default:
		writeError(w, "status must be one of: pending won lost", http.StatusBadRequest)
		return
	}

	wagers, err := s.services.Wagers.ListWeekWagers(r.Context(), week, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wagers)
}

// listPeriods handles GET /api/v1/admin/periods
func (s *Server) listPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := s.services.Periods.ListPeriods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

// getPeriod handles GET /api/v1/admin/periods/{week}
func (s *Server) getPeriod(w http.ResponseWriter, r *http.Request) {
	s.periodAction(w, r, s.services.Periods.GetPeriod)
}

// setPeriod handles PUT /api/v1/admin/periods/{week}
func (s *Server) setPeriod(w http.ResponseWriter, r *http.Request) {
	week, err := pathWeek(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req setPeriodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	period, err := s.services.Periods.SetPeriod(r.Context(), week, req.LockTime)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

// lockPeriod handles POST /api/v1/admin/periods/{week}/lock
func (s *Server) lockPeriod(w http.ResponseWriter, r *http.Request) {
	s.periodAction(w, r, s.services.Periods.LockPeriod)
}

// unlockPeriod handles POST /api/v1/admin/periods/{week}/unlock
func (s *Server) unlockPeriod(w http.ResponseWriter, r *http.Request) {
	s.periodAction(w, r, s.services.Periods.UnlockPeriod)
}

// settlePeriod handles POST /api/v1/admin/periods/{week}/settle
func (s *Server) settlePeriod(w http.ResponseWriter, r *http.Request) {
	s.periodAction(w, r, s.services.Settlement.SettlePeriod)
}

func (s *Server) periodAction(w http.ResponseWriter, r *http.Request, action func(context.Context, int) (*models.Period, error)) {
	week, err := pathWeek(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	period, err := action(r.Context(), week)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, period)
}
