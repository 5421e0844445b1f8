package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"carelink/internal/match"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationErrors reports every failed rule for the submission at
// once. Validation never commits a partial mutation.
func writeValidationErrors(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": msgs})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(match.DateLayout, s)
}
