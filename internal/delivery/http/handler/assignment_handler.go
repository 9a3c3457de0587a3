package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"

	"github.com/gorilla/mux"
)

type AssignmentHandler struct {
	assignmentUsecase usecase.AssignmentUsecase
	flashService      service.FlashService
}

func NewAssignmentHandler(assignmentUsecase usecase.AssignmentUsecase, flashService service.FlashService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		flashService:      flashService,
	}
}

// Assign links a patient to a clinician
// @Summary Assign patient to clinician
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AssignRequest true "Assign Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/assignments [post]
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	assignment, err := h.assignmentUsecase.Assign(r.Context(), &req)
	if err != nil {
		status, message := errorStatus(err, "Failed to assign patient")
		if status == http.StatusNotFound {
			message = "Invalid clinician or patient."
		}
		setFlash(r, h.flashService, service.FlashError, message)
		response.Error(w, status, message, nil)
		return
	}

	setFlash(r, h.flashService, service.FlashSuccess, "Patient assignment updated.")
	response.Success(w, http.StatusOK, "Patient assignment updated.", assignment)
}

// Unassign removes a patient's clinician
// @Summary Unassign patient
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param patientId path string true "Patient user ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/assignments/{patientId} [delete]
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentUsecase.Unassign(r.Context(), mux.Vars(r)["patientId"]); err != nil {
		status, message := errorStatus(err, "Failed to unassign patient")
		if errors.Is(err, usecase.ErrMissingArgument) {
			message = "Patient is required."
		}
		setFlash(r, h.flashService, service.FlashError, message)
		response.Error(w, status, message, nil)
		return
	}

	setFlash(r, h.flashService, service.FlashSuccess, "Patient assignment removed.")
	response.Success(w, http.StatusOK, "Patient assignment removed.", nil)
}
