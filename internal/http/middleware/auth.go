package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/internal/httputil"
	"github.com/portailgestion/portail-admin/pkg/auth"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

type contextKey string

// UserIDKey is the context key for the authenticated user ID.
const UserIDKey contextKey = "user_id"

// Auth creates middleware that validates session tokens.
// Checks the jwt cookie first, then falls back to the Authorization header
// for non-browser clients. All token failures surface as 401.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, _ := httputil.GetTokenFromCookie(r)

			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				if authHeader != "" {
					parts := strings.SplitN(authHeader, " ", 2)
					if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
						tokenString = parts[1]
					}
				}
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenMissing):
					httputil.Error(w, http.StatusUnauthorized, "unauthenticated")
				case errors.Is(err, domain.ErrTokenExpired):
					httputil.Error(w, http.StatusUnauthorized, "token expired")
				default:
					httputil.Error(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
