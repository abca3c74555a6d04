package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// defaultReportWindow is how far back reports are aggregated when the
// request carries no date floor
const defaultReportWindow = 365 * 24 * time.Hour

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// parseSince resolves the ?date= report window floor
func parseSince(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().Add(-defaultReportWindow), true
	}

	since, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return since, true
}
