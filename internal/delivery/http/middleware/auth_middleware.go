package middleware

import (
	"errors"
	"strings"

	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxWorkerIDKey = "worker_id"
	CtxLoginKey    = "login"
	CtxRoleKey     = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		role := worker.Role(claims.Role)
		if !role.Valid() {
			return NewAppError(fiber.StatusForbidden, "Unknown role", nil, nil)
		}

		c.Locals(CtxWorkerIDKey, claims.WorkerID)
		c.Locals(CtxLoginKey, claims.Login)
		c.Locals(CtxRoleKey, role)

		return c.Next()
	}
}

// RequireAdmin must run after Middleware.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(worker.Role)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if role != worker.RoleAdmin {
			return NewAppError(fiber.StatusForbidden, "Administrator access required", nil, nil)
		}
		return c.Next()
	}
}

// Caller reads the authenticated identity placed by Middleware.
func Caller(c fiber.Ctx) (int64, worker.Role, bool) {
	id, ok := c.Locals(CtxWorkerIDKey).(int64)
	if !ok || id <= 0 {
		return 0, 0, false
	}
	role, ok := c.Locals(CtxRoleKey).(worker.Role)
	if !ok {
		return 0, 0, false
	}
	return id, role, true
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
