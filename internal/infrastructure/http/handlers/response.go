// Package handlers provides HTTP handlers for the JSON API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an application error to its HTTP status. Unknown errors
// stay generic so internals never reach the client.
func writeError(logger *zap.Logger, w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unexpected error", zap.Error(err))
		writeJSON(logger, w, http.StatusInternalServerError, APIResponse{
			Success: false,
			Error:   "Beklenmeyen bir hata oluştu",
		})
		return
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("code", string(appErr.Code)), zap.Error(err))
	}

	writeJSON(logger, w, status, APIResponse{
		Success: false,
		Error:   appErr.Message,
	})
}
