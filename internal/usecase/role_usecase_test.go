package usecase

import (
	"context"
	"errors"
	"testing"

	"graphene-trace-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSetRole_ReplacesAllMemberships(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RolePatient, entity.RoleClinician)
	ctx := context.Background()

	require.NoError(t, env.roles.SetRole(ctx, user.ID, entity.RoleAdmin))
	assert.Equal(t, []string{entity.RoleAdmin}, env.roleNames(t, user))

	userDomain, err := env.userDomainRepo.FindByUserID(ctx, env.db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, userDomain)
	assert.Equal(t, entity.RoleAdmin, userDomain.Domain)
	assert.Equal(t, "user@example.com", userDomain.Email)

	require.NoError(t, env.roles.SetRole(ctx, user.ID, entity.RolePatient))
	assert.Equal(t, []string{entity.RolePatient}, env.roleNames(t, user))

	userDomain, err = env.userDomainRepo.FindByUserID(ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, userDomain.Domain)

	assert.Contains(t, env.auditMessages(t), "Admin set role Patient for user user@example.com")
}

func TestSetRole_CreatesUnknownRoleOnce(t *testing.T) {
	env := newTestEnv(t)
	first := env.createUser(t, "first@example.com", "secret1")
	second := env.createUser(t, "second@example.com", "secret1")
	ctx := context.Background()

	require.NoError(t, env.roles.SetRole(ctx, first.ID, "Researcher"))
	require.NoError(t, env.roles.SetRole(ctx, second.ID, "RESEARCHER"))

	roles, err := env.roles.ListRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleClinician, entity.RolePatient, "Researcher"}, roles)
	assert.Equal(t, []string{"Researcher"}, env.roleNames(t, second))
}

func TestSetRole_Rejections(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RolePatient)

	assert.ErrorIs(t, env.roles.SetRole(context.Background(), uuid.New(), entity.RoleAdmin), ErrUserNotFound)
	assert.ErrorIs(t, env.roles.SetRole(context.Background(), user.ID, "  "), ErrValidation)
	assert.Equal(t, []string{entity.RolePatient}, env.roleNames(t, user))
}

func TestSetRole_FailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user@example.com", "secret1", entity.RolePatient)

	err := env.db.Callback().Create().Before("gorm:create").Register("test:fail_user_domains", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_domains" {
			_ = tx.AddError(errors.New("user_domains unavailable"))
		}
	})
	require.NoError(t, err)

	err = env.roles.SetRole(context.Background(), user.ID, "Auditor")
	require.Error(t, err)

	assert.Equal(t, []string{entity.RolePatient}, env.roleNames(t, user))
	exists, err := env.roleRepo.Exists(context.Background(), env.db, "Auditor")
	require.NoError(t, err)
	assert.False(t, exists)
}
