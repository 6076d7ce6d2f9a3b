package middlewares

import (
	"context"
	"net/http"
	"strings"

	"salestrack/models"
	"salestrack/utils"

	"github.com/gorilla/websocket"
)

// TokenParser validates a signed token issued for purpose.
type TokenParser interface {
	ParseToken(token, purpose string) (*models.Claims, error)
}

type contextKey string

const UserContextKey contextKey = "user"

// JWTMiddleware requires a session token in the Authorization header.
// Websocket upgrades may pass it as ?access_token= instead, since browsers
// cannot set headers on them.
func JWTMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			claims, err := parser.ParseToken(tokenString, models.TokenPurposeSession)
			if err != nil {
				utils.HandleMessageResponse(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		return tokenString, tokenString != authHeader && tokenString != ""
	}
	if websocket.IsWebSocketUpgrade(r) {
		tokenString := r.URL.Query().Get("access_token")
		return tokenString, tokenString != ""
	}
	return "", false
}

func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

func GetClaimsFromContext(ctx context.Context) *models.Claims {
	if claims, ok := ctx.Value(UserContextKey).(*models.Claims); ok {
		return claims
	}
	return nil
}

func GetUserIDFromContext(ctx context.Context) string {
	if claims := GetClaimsFromContext(ctx); claims != nil {
		return claims.UID
	}
	return ""
}
