package api

import (
	"net/http"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

// createUser handles POST /api/v1/users
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.services.Users.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// getUser handles GET /api/v1/users/{userID}
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userID")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := s.services.Users.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// getBalanceHistory handles GET /api/v1/users/{userID}/history
func (s *Server) getBalanceHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userID")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := s.services.Users.GetBalanceHistory(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
