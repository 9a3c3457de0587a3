package converter

import (
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Role is the first loaded role, Roles lists all of them.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		UserName:    user.UserName,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.PrimaryRole(),
		Roles:       user.RoleNames(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// UsersToPickList converts users to id/email pairs for assignment pickers
func UsersToPickList(users []entity.User) []dto.PickListItem {
	items := make([]dto.PickListItem, len(users))
	for i, user := range users {
		items[i] = dto.PickListItem{
			ID:    user.ID,
			Email: user.Email,
		}
	}
	return items
}
