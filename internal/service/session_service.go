package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"graphene-trace-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrSessionRevoked = errors.New("session has been revoked")
)

// Session is an issued, registered session token
type Session struct {
	Token     string
	TokenID   string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// SessionService issues, validates and revokes sessions.
// A token is valid only while its registry key exists in Redis.
type SessionService interface {
	Establish(ctx context.Context, userID uuid.UUID, email string) (*Session, error)
	Validate(ctx context.Context, token string) (*jwt.Claims, error)
	IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type sessionService struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSessionService(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) SessionService {
	return &sessionService{
		jwtService:  jwtService,
		redisClient: redisClient,
		log:         log,
	}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("session:%s:%s", userID.String(), tokenID)
}

func (s *sessionService) Establish(ctx context.Context, userID uuid.UUID, email string) (*Session, error) {
	token, tokenID, err := s.jwtService.GenerateSessionToken(userID, email)
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	expiry := s.jwtService.GetExpiry()
	if err := s.redisClient.Set(ctx, sessionKey(userID, tokenID), "valid", expiry).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return nil, err
	}

	return &Session{
		Token:     token,
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	active, err := s.IsActive(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

func (s *sessionService) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

// Revoke is idempotent
func (s *sessionService) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if tokenID == "" {
		return nil
	}
	if err := s.redisClient.Del(ctx, sessionKey(userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

func (s *sessionService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("session:%s:*", userID.String())

	var keys []string
	iter := s.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warnf("Failed to scan session keys: %+v", err)
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to delete sessions: %+v", err)
		return err
	}
	return nil
}
