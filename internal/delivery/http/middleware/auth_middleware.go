package middleware

import (
	"context"
	"net/http"
	"strings"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/jwt"
	"mediquick-api/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
)

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate requires a valid bearer token carrying one of the known
// roles and puts the caller on the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}
		if !entity.IsKnownRole(claims.Role) {
			response.Forbidden(w, "Unknown role")
			return
		}

		ctx := WithUser(r.Context(), claims.UserID, claims.Role)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser stores the caller identity in ctx.
func WithUser(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
