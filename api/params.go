package api

import (
	"fmt"
	"net/http"
	"strconv"

	"sportsbook/models"

	"github.com/go-chi/chi/v5"
)

// pathInt64 parses a positive integer URL parameter
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// pathWeek parses the {week} URL parameter
func pathWeek(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "week")
	week, err := strconv.Atoi(raw)
	if err != nil || !models.ValidWeek(week) {
		return 0, fmt.Errorf("invalid week %q", raw)
	}
	return week, nil
}

// queryLimit parses ?limit; zero means the service default
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 500 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}
