package http

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"message": message})
}

// writeError uses the same flat {message} envelope the dashboards consume;
// there is no separate error schema.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeMessage(w, statusCode, message)
}
