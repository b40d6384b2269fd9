package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/http/middleware"
	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
	apperrors "github.com/denizsemerci/egeli-betty/pkg/errors"
)

// AuthHandlers serves the admin session and account endpoints
type AuthHandlers struct {
	userService inbound.UserService
	logger      *zap.Logger
}

// NewAuthHandlers creates the auth handlers
func NewAuthHandlers(userService inbound.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		userService: userService,
		logger:      logger,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}

	resp, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, apperrors.NewUnauthorizedError(""))
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: profile})
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, apperrors.NewUnauthorizedError(""))
		return
	}

	var cmd inbound.UpdateProfileCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}
	cmd.UserID = userID

	profile, err := h.userService.UpdateProfile(r.Context(), cmd)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    profile,
		Message: "Profil güncellendi",
	})
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, apperrors.NewUnauthorizedError(""))
		return
	}

	var cmd inbound.ChangePasswordCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("Geçersiz istek gövdesi"))
		return
	}
	cmd.UserID = userID

	if err := h.userService.ChangePassword(r.Context(), cmd); err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Şifre değiştirildi",
	})
}
