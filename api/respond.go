package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sportsbook/service"

	log "github.com/sirupsen/logrus"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error    string     `json:"error"`
	Reason   string     `json:"reason,omitempty"`
	LockTime *time.Time `json:"lock_time,omitempty"`
	Fields   []fieldErr `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidStake),
		errors.Is(err, service.ErrInvalidOdds),
		errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrInvalidWeek),
		errors.Is(err, service.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadySettled),
		errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrPeriodLocked):
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports a service failure. Internal errors are logged and
// replaced by a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		}).Error("Request failed")
		writeError(w, "internal error", status)
		return
	}

	body := errorResponse{
		Error:  err.Error(),
		Reason: service.RejectionReason(err),
	}
	var locked *service.PeriodLockedError
	if errors.As(err, &locked) {
		lockTime := locked.LockTime
		body.LockTime = &lockTime
	}
	writeJSON(w, status, body)
}
