package middleware

import (
	"net/http"

	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"
)

type RoleMiddleware struct {
	authUsecase usecase.AuthUsecase
}

func NewRoleMiddleware(authUsecase usecase.AuthUsecase) *RoleMiddleware {
	return &RoleMiddleware{authUsecase: authUsecase}
}

// RequireRole checks the caller's membership in the store on every request.
// A failed lookup denies access.
func (m *RoleMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			allowed, err := m.authUsecase.Authorize(r.Context(), userID, role)
			if err != nil || !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
