package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
)

type healthResponse struct {
	Status string `json:"status"`
}

// healthy reports whether the profile storage answers.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := app.db.ReadOnly.PingContext(r.Context()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "health check failed", errors.SlogError(err))
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: status})
}

// testTimeout sleeps for the duration in the sleep query parameter, e.g. ?sleep=500ms.
// It exercises the request timeout.
func (app *application) testTimeout(w http.ResponseWriter, r *http.Request) {
	var sleep time.Duration
	if raw := r.URL.Query().Get("sleep"); raw != "" {
		var err error
		if sleep, err = time.ParseDuration(raw); err != nil {
			http.Error(w, "Invalid sleep parameter", http.StatusBadRequest)
			return
		}
	}
	time.Sleep(sleep)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "completed"})
}
