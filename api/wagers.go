package api

import (
	"net/http"

	"sportsbook/service"

	"github.com/shopspring/decimal"
)

type placeWagerRequest struct {
	Week      int             `json:"week" validate:"required,gt=0,max=2147483647"`
	BetType   string          `json:"bet_type" validate:"omitempty,max=32"`
	Selection string          `json:"selection" validate:"required,max=200"`
	Stake     decimal.Decimal `json:"stake"`
	Odds      string          `json:"odds" validate:"required,max=16"`
}

// placeWager handles POST /api/v1/wagers
func (s *Server) placeWager(w http.ResponseWriter, r *http.Request) {
	var req placeWagerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.services.Wagers.PlaceWager(r.Context(), service.PlaceWagerRequest{
		UserID:    userIDFrom(r.Context()),
		Week:      req.Week,
		BetType:   req.BetType,
		Selection: req.Selection,
		Stake:     req.Stake,
		Odds:      req.Odds,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// cancelWager handles DELETE /api/v1/wagers/{wagerID}
func (s *Server) cancelWager(w http.ResponseWriter, r *http.Request) {
	wagerID, err := pathInt64(r, "wagerID")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.services.Wagers.CancelWager(r.Context(), userIDFrom(r.Context()), wagerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getWager handles GET /api/v1/wagers/{wagerID}
func (s *Server) getWager(w http.ResponseWriter, r *http.Request) {
	wagerID, err := pathInt64(r, "wagerID")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	wager, err := s.services.Wagers.GetWager(r.Context(), userIDFrom(r.Context()), wagerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wager)
}

// listPendingWagers handles GET /api/v1/wagers/pending
func (s *Server) listPendingWagers(w http.ResponseWriter, r *http.Request) {
	wagers, err := s.services.Wagers.ListPendingWagers(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wagers)
}

// listWagers handles GET /api/v1/wagers
func (s *Server) listWagers(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	wagers, err := s.services.Wagers.ListWagers(r.Context(), userIDFrom(r.Context()), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wagers)
}
