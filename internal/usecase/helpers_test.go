package usecase

import (
	"context"
	"strings"
	"testing"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/repository"
	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB
	mr *miniredis.Miniredis

	userRepo       domainRepo.UserRepository
	roleRepo       domainRepo.RoleRepository
	assignmentRepo domainRepo.AssignmentRepository
	userDomainRepo domainRepo.UserDomainRepository
	settingsRepo   domainRepo.SettingsRepository
	auditRepo      domainRepo.AuditLogRepository

	sessions service.SessionService
	flashes  service.FlashService
	audit    service.AuditService

	auth        AuthUsecase
	users       UserUsecase
	roles       RoleUsecase
	assignments AssignmentUsecase
	reports     ReportUsecase
	settings    SettingsUsecase
	auditLogs   AuditLogUsecase
	seed        SeedUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	redisClient, mr := testutil.NewRedis(t)
	log := testutil.Logger()

	env := &testEnv{
		db:             db,
		mr:             mr,
		userRepo:       repository.NewUserRepository(),
		roleRepo:       repository.NewRoleRepository(),
		assignmentRepo: repository.NewAssignmentRepository(),
		userDomainRepo: repository.NewUserDomainRepository(),
		settingsRepo:   repository.NewSettingsRepository(),
		auditRepo:      repository.NewAuditLogRepository(),
	}
	env.sessions = service.NewSessionService(testutil.NewJWTService(), redisClient, log)
	env.flashes = service.NewFlashService(redisClient, log)
	env.audit = service.NewAuditService(db, log, env.auditRepo)

	env.auth = NewAuthUsecase(db, log, env.userRepo, env.roleRepo, env.sessions, env.audit)
	env.users = NewUserUsecase(db, log, env.userRepo, env.roleRepo, env.assignmentRepo, env.userDomainRepo, env.sessions, env.flashes, env.audit)
	env.roles = NewRoleUsecase(db, log, env.userRepo, env.roleRepo, env.userDomainRepo, env.audit)
	env.assignments = NewAssignmentUsecase(db, log, env.userRepo, env.assignmentRepo, env.audit)
	env.reports = NewReportUsecase(db, log, env.userRepo, env.roleRepo, env.assignmentRepo)
	env.settings = NewSettingsUsecase(db, log, env.settingsRepo, env.audit)
	env.auditLogs = NewAuditLogUsecase(db, log, env.auditRepo, DefaultAuditViewLimit)
	env.seed = NewSeedUsecase(db, log, config.SeedConfig{AdminEmail: "admin@graphenetrace.com", AdminPassword: "Admin@123"}, env.userRepo, env.roleRepo)

	for _, name := range entity.DefaultRoles {
		_, err := env.roleRepo.Create(context.Background(), db, name)
		require.NoError(t, err)
	}
	return env
}

// createUser stores a user with the given roles, bypassing the admin usecase
func (env *testEnv) createUser(t *testing.T, email, password string, roles ...string) *entity.User {
	t.Helper()
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{Password: string(hashed)}
	user.SetEmail(email)
	require.NoError(t, env.userRepo.Create(ctx, env.db, user))

	for _, name := range roles {
		role, err := env.roleRepo.FindByName(ctx, env.db, name)
		require.NoError(t, err)
		if role == nil {
			role, err = env.roleRepo.Create(ctx, env.db, name)
			require.NoError(t, err)
		}
		require.NoError(t, env.roleRepo.Assign(ctx, env.db, user.ID, role.ID))
	}
	return user
}

func (env *testEnv) sessionKeys() []string {
	var keys []string
	for _, key := range env.mr.Keys() {
		if strings.HasPrefix(key, "session:") {
			keys = append(keys, key)
		}
	}
	return keys
}

func (env *testEnv) auditMessages(t *testing.T) []string {
	t.Helper()
	logs, err := env.auditRepo.FindRecent(context.Background(), env.db, 1000)
	require.NoError(t, err)

	messages := make([]string, len(logs))
	for i, l := range logs {
		messages[i] = l.Message
	}
	return messages
}

func (env *testEnv) roleNames(t *testing.T, user *entity.User) []string {
	t.Helper()
	roles, err := env.roleRepo.RolesOf(context.Background(), env.db, user.ID)
	require.NoError(t, err)

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names
}
