package http

import (
	"encoding/json"
	"net/http"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
)

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// statusFor maps domain error codes to HTTP status codes.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeUnavailable:
		return http.StatusBadRequest
	case domain.CodeAuthentication:
		return http.StatusUnauthorized
	case domain.CodeWindowExpired:
		return http.StatusPaymentRequired
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := statusFor(code)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak internals to clients.
		logger.Error("Request failed", "error", err)
		message = "internal server error"
	}
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// decodeBody parses a JSON request body into target.
func decodeBody(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return domain.ValidationError("invalid request body")
	}
	return nil
}
