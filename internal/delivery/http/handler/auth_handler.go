package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	cookie      config.SessionConfig
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		cookie:      cookie,
	}
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, session dto.SessionResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login handles user login
// @Summary Login user
// @Description Login with email, password and an optional domain (admin, clinician, patient)
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, usecase.ErrDomainMismatch):
			response.Unauthorized(w, "Selected domain does not match your account role")
		case errors.Is(err, usecase.ErrAccessDenied):
			response.Forbidden(w, "Your role is not permitted to sign in")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	setSessionCookie(w, h.cookie, result.Session)
	response.Success(w, http.StatusOK, "Login successful", result)
}

// Logout handles user logout
// @Summary Logout user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}
	email, _ := middleware.GetUserEmailFromContext(r.Context())
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), userID, email, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	clearSessionCookie(w, h.cookie)
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	user, err := h.authUsecase.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get user info")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
