package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"graphene-trace-portal/internal/service"
	"graphene-trace-portal/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const TokenIDKey contextKey = "token_id"

type AuthMiddleware struct {
	sessionService service.SessionService
	cookieName     string
}

func NewAuthMiddleware(sessionService service.SessionService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
		cookieName:     cookieName,
	}
}

// Authenticate accepts the session cookie or an "Authorization: Bearer" header
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.tokenFromRequest(r)
		if token == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		claims, err := m.sessionService.Validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSession) || errors.Is(err, service.ErrSessionRevoked) {
				response.Unauthorized(w, "Session is invalid or has ended")
				return
			}
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		ctx := service.WithActor(r.Context(), claims.UserID, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, _, ok := service.ActorFromContext(ctx)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	_, email, ok := service.ActorFromContext(ctx)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
