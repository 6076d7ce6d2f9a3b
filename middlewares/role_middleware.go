package middlewares

import (
	"context"
	"net/http"
	"slices"

	"salestrack/models"
	"salestrack/utils"
)

// UserLookup loads the stored user behind a token.
type UserLookup interface {
	CurrentUser(ctx context.Context, uid string) (*models.User, error)
}

// RequireRole lets the request through only when the caller's stored role is
// one of roles. The role is re-read on every request so demotions and
// deactivations apply before the token expires. Must run after JWTMiddleware.
func RequireRole(users UserLookup, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			user, err := users.CurrentUser(r.Context(), claims.UID)
			if err != nil || !user.IsActive || !slices.Contains(roles, user.Role) {
				utils.HandleMessageResponse(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			scoped := *claims
			scoped.Role = user.Role
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), &scoped)))
		})
	}
}
