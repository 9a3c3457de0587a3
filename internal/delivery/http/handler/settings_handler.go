package handler

import (
	"encoding/json"
	"net/http"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"
	"graphene-trace-portal/pkg/validator"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	authUsecase     usecase.AuthUsecase
	validator       *validator.CustomValidator
	cookie          config.SessionConfig
}

func NewSettingsHandler(
	settingsUsecase usecase.SettingsUsecase,
	authUsecase usecase.AuthUsecase,
	validator *validator.CustomValidator,
	cookie config.SessionConfig,
) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		authUsecase:     authUsecase,
		validator:       validator,
		cookie:          cookie,
	}
}

// GetSettings returns the system settings
// @Summary Get system settings
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.Get(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

// SaveSettings stores the system settings as submitted
// @Summary Save system settings
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SettingsRequest true "Settings"
// @Success 200 {object} response.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid settings input.", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.settingsUsecase.Save(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save settings")
		return
	}

	response.Success(w, http.StatusOK, "System settings saved.", settings)
}

// ChangePassword changes the signed-in admin's password and reissues the session
// @Summary Change password
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/settings/password [post]
func (h *SettingsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.authUsecase.ChangePassword(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to change password")
		return
	}

	setSessionCookie(w, h.cookie, *session)
	response.Success(w, http.StatusOK, "Password updated.", session)
}
