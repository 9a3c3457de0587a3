package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"graphene-trace-portal/internal/converter"
	"graphene-trace-portal/internal/delivery/dto"
	"graphene-trace-portal/internal/domain/entity"
	"graphene-trace-portal/internal/domain/repository"
	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// LandingPath is the dashboard of a role's area
func LandingPath(role string) string {
	return "/" + strings.ToLower(role) + "/dashboard"
}

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, email, tokenID string) error
	// Authorize checks role membership against the store on every call
	Authorize(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) (*dto.SessionResponse, error)
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	sessionService service.SessionService
	auditService   service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		sessionService: sessionService,
		auditService:   auditService,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalid).Inc()
		return nil, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return nil, err
	}
	if user == nil {
		u.auditService.Warn(ctx, entity.AuditCategoryAuth, entity.AuditActionLoginNotFound,
			fmt.Sprintf("Login failed (user not found) for email %s", email), nil)
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalid).Inc()
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		u.auditService.Warn(ctx, entity.AuditCategoryAuth, entity.AuditActionLoginBadPassword,
			fmt.Sprintf("Login failed (bad credentials) for email %s", email), nil)
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalid).Inc()
		return nil, ErrInvalidCredentials
	}

	session, err := u.sessionService.Establish(ctx, user.ID, user.Email)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return nil, err
	}

	if domain := strings.TrimSpace(req.Domain); domain != "" {
		expected := entity.RoleForDomain(domain)
		if expected == "" || !user.HasRole(expected) {
			u.discardSession(ctx, session)
			u.auditService.Warn(ctx, entity.AuditCategoryAuth, entity.AuditActionLoginDomain,
				fmt.Sprintf("Login failed (domain mismatch) for email %s with domain %s", email, domain),
				entity.JSON{"domain": domain})
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginDomainMismatch).Inc()
			return nil, ErrDomainMismatch
		}
	}

	role := landingRole(user)
	if role == "" {
		u.discardSession(ctx, session)
		u.auditService.Warn(ctx, entity.AuditCategoryAuth, entity.AuditActionLoginDenied,
			fmt.Sprintf("Access denied: role not permitted for email %s", email), nil)
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginAccessDenied).Inc()
		return nil, ErrAccessDenied
	}

	u.auditService.Info(service.WithActor(ctx, user.ID, user.Email), entity.AuditCategoryAuth, entity.AuditActionLoginSucceeded,
		fmt.Sprintf("Login succeeded for email %s", email), entity.JSON{"role": role})
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSucceeded).Inc()

	return &dto.LoginResponse{
		User:    *converter.UserToResponse(user),
		Role:    role,
		Landing: LandingPath(role),
		Session: *sessionToResponse(session),
	}, nil
}

// landingRole picks the first role of the landing priority the user holds
func landingRole(user *entity.User) string {
	for _, role := range entity.LandingPriority {
		if user.HasRole(role) {
			return role
		}
	}
	return ""
}

// discardSession revokes the session of a login that did not complete
func (u *authUsecase) discardSession(ctx context.Context, session *service.Session) {
	if err := u.sessionService.Revoke(ctx, session.UserID, session.TokenID); err != nil {
		u.log.Warnf("Failed to revoke session of rejected login: %+v", err)
	}
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, email, tokenID string) error {
	if err := u.sessionService.Revoke(ctx, userID, tokenID); err != nil {
		return err
	}

	if email != "" {
		u.auditService.Info(ctx, entity.AuditCategoryAuth, entity.AuditActionLogout,
			fmt.Sprintf("Logout for email %s", email), nil)
	}
	return nil
}

func (u *authUsecase) Authorize(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	ok, err := u.roleRepo.HasRole(ctx, u.db, userID, role)
	if err != nil {
		u.log.Warnf("Failed to check role membership: %+v", err)
		return false, err
	}
	return ok, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// ChangePassword replaces the password of the signed-in user, ends every other session
// and returns a fresh one for the caller
func (u *authUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(req.CurrentPassword) == "" || strings.TrimSpace(req.NewPassword) == "" || strings.TrimSpace(req.ConfirmPassword) == "" {
		return nil, validationError("All password fields are required.")
	}
	if req.NewPassword != req.ConfirmPassword {
		return nil, validationError("New password and confirmation do not match.")
	}
	if len(req.NewPassword) < minPasswordLength {
		return nil, validationError("Password must be at least 6 characters.")
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return nil, validationError("Current password is incorrect.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	user.Password = string(hashedPassword)

	if err := u.userRepo.Update(ctx, u.db, user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		metrics.ObserveAdminOperation("change_password", err)
		return nil, err
	}

	if err := u.sessionService.RevokeAll(ctx, user.ID); err != nil {
		return nil, err
	}
	session, err := u.sessionService.Establish(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	u.auditService.Info(ctx, entity.AuditCategoryAuth, entity.AuditActionPasswordChange,
		fmt.Sprintf("Admin password changed for %s", user.Email), nil)
	metrics.ObserveAdminOperation("change_password", nil)

	return sessionToResponse(session), nil
}

func sessionToResponse(session *service.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Token:     session.Token,
		TokenID:   session.TokenID,
		ExpiresIn: int64(time.Until(session.ExpiresAt).Seconds()),
		ExpiresAt: session.ExpiresAt,
	}
}
