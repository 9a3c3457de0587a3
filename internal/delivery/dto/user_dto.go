package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,loose_email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Password    string `json:"password" validate:"required"`
	Role        string `json:"role" validate:"omitempty,max=50"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,loose_email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,max=50"`
}

// Response DTOs

// UserListItem is one row of the user management listing
type UserListItem struct {
	ID                     uuid.UUID `json:"id"`
	Email                  string    `json:"email"`
	UserName               string    `json:"user_name"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	PhoneNumber            string    `json:"phone_number"`
	Role                   string    `json:"role"`
	PatientCount           int64     `json:"patient_count"`
	AssignedClinicianEmail string    `json:"assigned_clinician_email,omitempty"`
}

type PickListItem struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type FlashResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type UserManagementResponse struct {
	Users      []UserListItem `json:"users"`
	Clinicians []PickListItem `json:"clinicians"`
	Patients   []PickListItem `json:"patients"`
	Flash      *FlashResponse `json:"flash,omitempty"`
}
