package handler

import (
	"net/http"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"
)

// DashboardHandler serves the landing pages of the clinician and patient areas
type DashboardHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewDashboardHandler(authUsecase usecase.AuthUsecase) *DashboardHandler {
	return &DashboardHandler{authUsecase: authUsecase}
}

func (h *DashboardHandler) Landing(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Invalid session")
			return
		}

		user, err := h.authUsecase.CurrentUser(r.Context(), userID)
		if err != nil {
			writeError(w, err, "Failed to load dashboard")
			return
		}

		response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dto.DashboardLandingResponse{
			Role: role,
			User: *user,
		})
	}
}
