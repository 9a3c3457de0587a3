package handler

import (
	"errors"
	"net/http"

	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// errorStatus maps usecase errors to an HTTP status and a user-facing message.
// Unknown errors are store failures and get fallback.
func errorStatus(err error, fallback string) (int, string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest, "Invalid input."
	case errors.Is(err, usecase.ErrMissingArgument):
		return http.StatusBadRequest, "Both clinician and patient are required."
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, usecase.ErrConflict):
		return http.StatusConflict, "User with this email already exists."
	case errors.Is(err, usecase.ErrRoleMismatch):
		return http.StatusUnprocessableEntity, "Role mismatch: ensure correct roles for assignment."
	default:
		return http.StatusInternalServerError, fallback
	}
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	status, message := errorStatus(err, fallback)
	respondError(w, status, message)
}

func respondError(w http.ResponseWriter, status int, message string) {
	switch status {
	case http.StatusBadRequest:
		response.BadRequest(w, message)
	case http.StatusNotFound:
		response.NotFound(w, message)
	case http.StatusConflict:
		response.Conflict(w, message)
	case http.StatusUnprocessableEntity:
		response.UnprocessableEntity(w, message)
	default:
		response.InternalServerError(w, message)
	}
}

// setFlash queues a banner for the caller's next user listing
func setFlash(r *http.Request, flashService service.FlashService, kind, message string) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		return
	}
	_ = flashService.Set(r.Context(), tokenID, service.Flash{Kind: kind, Message: message})
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}
