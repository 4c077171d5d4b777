package api

import (
	"encoding/json"
	"net/http"

	"listing-monitor/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, message string, err error, url string) {
	status := apperr.StatusCode(err)
	logger := loggerFrom(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("[api] %s %s: %s: %v", r.Method, r.URL.Path, message, err)
	} else {
		logger.Warn("[api] %s %s: %s: %v", r.Method, r.URL.Path, message, err)
	}
	writeJSON(w, status, errorResponse{Message: message, Error: err.Error(), URL: url})
}
