package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
)

type errorResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a service error onto an HTTP status. Unknown errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	resp := errorResponse{Status: http.StatusText(code), Error: err.Error()}
	switch code {
	case http.StatusConflict:
		resp.Reason = domain.ConflictReason(err)
	case http.StatusInternalServerError:
		logger.Error("Internal error", "error", err)
		resp.Error = "internal error"
	}
	writeJSON(w, code, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
