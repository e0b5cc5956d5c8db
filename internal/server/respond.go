package server

import (
	"encoding/json"
	"net/http"
)

// Fixed client-facing failure messages. The underlying cause is only logged.
const (
	msgClusterSummaries = "Failed to load cluster summaries"
	msgConversation     = "Failed to load conversation data"
	msgDurationStats    = "Failed to load duration stats"
	msgTimePatterns     = "Failed to load time patterns"
	msgTokenStats       = "Failed to fetch token statistics"
	msgExport           = "Failed to export dashboard"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondRaw writes an already encoded body.
func respondRaw(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
