package infrastructure

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope every endpoint writes, success or failure.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, err error) {
	apiErr := AsAPIError(err)
	WriteJSON(w, apiErr.StatusCode, nil, apiErr.Message)
}
