package usecase

import (
	"context"
	"testing"

	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin_LandingFollowsRolePriority(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		role    string
		landing string
	}{
		{"patient only", []string{entity.RolePatient}, entity.RolePatient, "/patient/dashboard"},
		{"clinician and patient", []string{entity.RolePatient, entity.RoleClinician}, entity.RoleClinician, "/clinician/dashboard"},
		{"all roles", []string{entity.RolePatient, entity.RoleClinician, entity.RoleAdmin}, entity.RoleAdmin, "/admin/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.createUser(t, "user@example.com", "secret1", tt.roles...)

			res, err := env.auth.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret1"})
			require.NoError(t, err)
			assert.Equal(t, tt.role, res.Role)
			assert.Equal(t, tt.landing, res.Landing)
			assert.NotEmpty(t, res.Session.Token)
			assert.Len(t, env.sessionKeys(), 1)
		})
	}
}

func TestLogin_DoesNotRevealWhetherEmailExists(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "known@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	_, errUnknown := env.auth.Login(ctx, &dto.LoginRequest{Email: "unknown@example.com", Password: "secret1"})
	_, errBadPassword := env.auth.Login(ctx, &dto.LoginRequest{Email: "known@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPassword, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errBadPassword.Error())
	assert.Empty(t, env.sessionKeys())

	messages := env.auditMessages(t)
	assert.Contains(t, messages, "Login failed (user not found) for email unknown@example.com")
	assert.Contains(t, messages, "Login failed (bad credentials) for email known@example.com")
}

func TestLogin_BlankFields(t *testing.T) {
	env := newTestEnv(t)

	for _, req := range []*dto.LoginRequest{
		{Email: "", Password: "secret1"},
		{Email: "  ", Password: "secret1"},
		{Email: "user@example.com", Password: ""},
	} {
		_, err := env.auth.Login(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Mixed.Case@Example.com", "secret1", entity.RoleClinician)

	res, err := env.auth.Login(context.Background(), &dto.LoginRequest{Email: "mixed.case@example.COM", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Mixed.Case@Example.com", res.User.Email)
}

func TestLogin_DomainMismatchLeavesNoSession(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "patient@example.com", "secret1", entity.RolePatient)
	ctx := context.Background()

	for _, domain := range []string{"admin", "Clinician", "unknown-area"} {
		_, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "patient@example.com", Password: "secret1", Domain: domain})
		assert.ErrorIs(t, err, ErrDomainMismatch, domain)
	}
	assert.Empty(t, env.sessionKeys())
	assert.Contains(t, env.auditMessages(t), "Login failed (domain mismatch) for email patient@example.com with domain admin")

	res, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "patient@example.com", Password: "secret1", Domain: " PATIENT "})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, res.Role)
}

func TestLogin_DomainMatchesAnyHeldRole(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "both@example.com", "secret1", entity.RoleAdmin, entity.RolePatient)

	res, err := env.auth.Login(context.Background(), &dto.LoginRequest{Email: "both@example.com", Password: "secret1", Domain: "patient"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)
}

func TestLogin_NoPermittedRoleIsDenied(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "norole@example.com", "secret1")
	env.createUser(t, "other@example.com", "secret1", "Auditor")
	ctx := context.Background()

	_, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "norole@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.Empty(t, env.sessionKeys())
	assert.Contains(t, env.auditMessages(t), "Access denied: role not permitted for email norole@example.com")
}

func TestLogout_RevokesSessionAndAudits(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RoleAdmin)
	ctx := context.Background()

	res, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, user.ID, user.Email, res.Session.TokenID))
	assert.Empty(t, env.sessionKeys())
	assert.Contains(t, env.auditMessages(t), "Logout for email user@example.com")

	// a second logout is harmless
	assert.NoError(t, env.auth.Logout(ctx, user.ID, user.Email, res.Session.TokenID))
}

func TestAuthorize_ReadsMembershipEveryTime(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RoleClinician)
	ctx := context.Background()

	ok, err := env.auth.Authorize(ctx, user.ID, entity.RoleClinician)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, env.roles.SetRole(ctx, user.ID, entity.RolePatient))

	ok, err = env.auth.Authorize(ctx, user.ID, entity.RoleClinician)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.auth.Authorize(ctx, uuid.New(), entity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RoleAdmin)

	res, err := env.auth.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin}, res.Roles)

	_, err = env.auth.CurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword_Rejections(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "admin@example.com", "secret1", entity.RoleAdmin)

	tests := []struct {
		name string
		req  dto.ChangePasswordRequest
	}{
		{"missing field", dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "newpass1"}},
		{"confirmation differs", dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "newpass1", ConfirmPassword: "newpass2"}},
		{"too short", dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "short", ConfirmPassword: "short"}},
		{"wrong current", dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass1", ConfirmPassword: "newpass1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.ChangePassword(context.Background(), user.ID, &tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestChangePassword_RotatesSessions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "admin@example.com", "secret1", entity.RoleAdmin)
	ctx := context.Background()

	old, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)

	fresh, err := env.auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "newpass1",
		ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	active, err := env.sessions.IsActive(ctx, user.ID, old.Session.TokenID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = env.sessions.IsActive(ctx, user.ID, fresh.TokenID)
	require.NoError(t, err)
	assert.True(t, active)

	stored, err := env.userRepo.FindByID(ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass1")))
	assert.Contains(t, env.auditMessages(t), "Admin password changed for admin@example.com")
}
