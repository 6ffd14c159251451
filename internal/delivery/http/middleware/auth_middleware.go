package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"portal-citas-backend/pkg/jwt"
	"portal-citas-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	EmployeeIDKey contextKey = "employee_id"
	UsernameKey   contextKey = "username"
	TokenIDKey    contextKey = "token_id"
)

// AuthMiddleware turns the session-provider bearer token into the
// request actor. The token is trusted once its signature checks out and
// it has not been revoked; no credential verification happens here.
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Check the session still exists in Redis (not revoked)
		sessionKey := fmt.Sprintf("session:%s:%s", claims.EmployeeID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), sessionKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Session has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), EmployeeIDKey, claims.EmployeeID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEmployeeIDFromContext extracts the actor's employee id from context
func GetEmployeeIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	employeeID, ok := ctx.Value(EmployeeIDKey).(uuid.UUID)
	return employeeID, ok
}

// EmployeeIDFromContext returns the actor's employee id or nil for an
// anonymous public caller. Used where the actor is optional (audit).
func EmployeeIDFromContext(ctx context.Context) *uuid.UUID {
	if employeeID, ok := GetEmployeeIDFromContext(ctx); ok {
		return &employeeID
	}
	return nil
}

// GetUsernameFromContext extracts the actor's username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
