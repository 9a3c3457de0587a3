package usecase

import (
	"context"
	"testing"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_PasswordLengthBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, &dto.CreateUserRequest{Email: "five@example.com", Password: "12345"})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := env.users.Create(ctx, &dto.CreateUserRequest{Email: "six@example.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "six@example.com", res.UserName)
}

func TestCreateUser_EmailRules(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"", "userexample.com", "user@example", "   "} {
		_, err := env.users.Create(context.Background(), &dto.CreateUserRequest{Email: email, Password: "secret1"})
		assert.ErrorIs(t, err, ErrValidation, email)
	}
}

func TestCreateUser_DuplicateEmailIgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, &dto.CreateUserRequest{Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = env.users.Create(ctx, &dto.CreateUserRequest{Email: "DUP@Example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	count, err := env.userRepo.Count(ctx, env.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateUser_WithRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.users.Create(ctx, &dto.CreateUserRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "0123",
		Password:    "secret1",
		Role:        entity.RoleClinician,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClinician, res.Role)

	userDomain, err := env.userDomainRepo.FindByUserID(ctx, env.db, res.ID)
	require.NoError(t, err)
	require.NotNil(t, userDomain)
	assert.Equal(t, entity.RoleClinician, userDomain.Domain)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "secret1", Domain: "clinician"})
	require.NoError(t, err)
	assert.Equal(t, "/clinician/dashboard", login.Landing)
	assert.Contains(t, env.auditMessages(t), "Admin created user ada@example.com with role Clinician")
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RolePatient)
	env.createUser(t, "taken@example.com", "secret1")
	ctx := context.Background()

	_, err := env.users.Update(ctx, user.ID, &dto.UpdateUserRequest{Email: "Taken@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Update(ctx, uuid.New(), &dto.UpdateUserRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.users.Update(ctx, user.ID, &dto.UpdateUserRequest{Email: "no-at-sign.com"})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := env.users.Update(ctx, user.ID, &dto.UpdateUserRequest{Email: "USER@example.com", FirstName: "New"})
	require.NoError(t, err)
	assert.Equal(t, "USER@example.com", res.Email)
	assert.Equal(t, res.Email, res.UserName)
	assert.Equal(t, "New", res.FirstName)

	found, err := env.userRepo.FindByEmail(ctx, env.db, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
}

func TestDeleteUser_RemovesEverythingAttached(t *testing.T) {
	env := newTestEnv(t)
	clinician := env.createUser(t, "c@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	require.NoError(t, env.roles.SetRole(ctx, clinician.ID, entity.RoleClinician))
	_, err := env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)
	_, err = env.sessions.Establish(ctx, clinician.ID, clinician.Email)
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, clinician.ID))

	found, err := env.userRepo.FindByID(ctx, env.db, clinician.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.Empty(t, env.roleNames(t, clinician))

	rows, err := env.assignmentRepo.FindAll(ctx, env.db)
	require.NoError(t, err)
	assert.Empty(t, rows)

	userDomain, err := env.userDomainRepo.FindByUserID(ctx, env.db, clinician.ID)
	require.NoError(t, err)
	assert.Nil(t, userDomain)
	assert.Empty(t, env.sessionKeys())

	assert.ErrorIs(t, env.users.Delete(ctx, clinician.ID), ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	clinician := env.createUser(t, "zed.clinician@example.com", "secret1", entity.RoleClinician)
	env.createUser(t, "amy.clinician@example.com", "secret1", entity.RoleClinician)
	patient := env.createUser(t, "p@example.com", "secret1", entity.RolePatient)
	env.createUser(t, "admin@example.com", "secret1", entity.RoleAdmin)
	ctx := context.Background()

	_, err := env.assignments.Assign(ctx, &dto.AssignRequest{ClinicianID: clinician.ID.String(), PatientID: patient.ID.String()})
	require.NoError(t, err)
	require.NoError(t, env.flashes.Set(ctx, "token-1", service.Flash{Kind: service.FlashSuccess, Message: "User deleted."}))

	res, err := env.users.List(ctx, "token-1")
	require.NoError(t, err)
	require.Len(t, res.Users, 4)

	byEmail := make(map[string]dto.UserListItem)
	for _, item := range res.Users {
		byEmail[item.Email] = item
	}
	assert.Equal(t, int64(1), byEmail["zed.clinician@example.com"].PatientCount)
	assert.Equal(t, int64(0), byEmail["amy.clinician@example.com"].PatientCount)
	assert.Equal(t, "zed.clinician@example.com", byEmail["p@example.com"].AssignedClinicianEmail)
	assert.Equal(t, entity.RoleAdmin, byEmail["admin@example.com"].Role)

	require.Len(t, res.Clinicians, 2)
	assert.Equal(t, "amy.clinician@example.com", res.Clinicians[0].Email)
	require.Len(t, res.Patients, 1)

	require.NotNil(t, res.Flash)
	assert.Equal(t, "User deleted.", res.Flash.Message)

	res, err = env.users.List(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, res.Flash)
}
