package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"
	"graphene-trace-portal/pkg/validator"
)

// UserHandler serves admin user management. Every mutation also queues its
// outcome as a banner for the next listing.
type UserHandler struct {
	userUsecase  usecase.UserUsecase
	roleUsecase  usecase.RoleUsecase
	flashService service.FlashService
	validator    *validator.CustomValidator
}

func NewUserHandler(
	userUsecase usecase.UserUsecase,
	roleUsecase usecase.RoleUsecase,
	flashService service.FlashService,
	validator *validator.CustomValidator,
) *UserHandler {
	return &UserHandler{
		userUsecase:  userUsecase,
		roleUsecase:  roleUsecase,
		flashService: flashService,
		validator:    validator,
	}
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := errorStatus(err, fallback)
	setFlash(r, h.flashService, service.FlashError, message)
	respondError(w, status, message)
}

func (h *UserHandler) succeed(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	setFlash(r, h.flashService, service.FlashSuccess, message)
	response.Success(w, status, message, data)
}

// ListUsers handles the user management listing
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())

	users, err := h.userUsecase.List(r.Context(), tokenID)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

// CreateUser handles account creation by an admin
// @Summary Create user
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		setFlash(r, h.flashService, service.FlashError, "Validation failed")
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err, "Failed to create user")
		return
	}

	role := user.Role
	if role == "" {
		role = "(none)"
	}
	h.succeed(w, r, http.StatusCreated, fmt.Sprintf("User '%s' created successfully with role '%s'.", user.Email, role), user)
}

// UpdateUser handles profile edits by an admin
// @Summary Update user
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		setFlash(r, h.flashService, service.FlashError, "Validation failed")
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err, "Failed to update user")
		return
	}

	h.succeed(w, r, http.StatusOK, "User updated successfully.", user)
}

// DeleteUser handles account removal
// @Summary Delete user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.fail(w, r, usecase.ErrUserNotFound, "")
		return
	}

	if err := h.userUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete user")
		return
	}

	h.succeed(w, r, http.StatusOK, "User deleted.", nil)
}

// SetRole handles replacing a user's role
// @Summary Set user role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.SetRoleRequest true "Set Role Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.fail(w, r, usecase.ErrUserNotFound, "")
		return
	}

	var req dto.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		setFlash(r, h.flashService, service.FlashError, "Validation failed")
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.roleUsecase.SetRole(r.Context(), id, req.Role); err != nil {
		h.fail(w, r, err, "Failed to update role")
		return
	}

	h.succeed(w, r, http.StatusOK, "Role updated successfully.", nil)
}

// ListRoles returns the role catalog
// @Summary List roles
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/roles [get]
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleUsecase.ListRoles(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}
