package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aplus/messaging/internal/auth"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	UserRoleKey  contextKey = "user_role"
	BoardIDKey   contextKey = "board_id"
	BoardRoleKey contextKey = "board_role"
)

const bearerPrefix = "Bearer "

// Auth is the authentication gate. It reads the bearer token from the
// Authorization header, validates it, and attaches the verified claims to
// the request context. It performs no I/O and never re-fetches the user.
func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					"Missing or invalid Authorization header (expected Bearer token).")
				return
			}

			token := strings.TrimPrefix(header, bearerPrefix)

			// Malformed, tampered and expired tokens all get the same
			// response so the failing check is not leaked.
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions to extract values from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetBoardID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(BoardIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetBoardRole(ctx context.Context) string {
	if role, ok := ctx.Value(BoardRoleKey).(string); ok {
		return role
	}
	return ""
}
