package middleware

import (
	"errors"
	"strings"

	"jobfinder/internal/pkg/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxIdentityKey = "identity"

	MsgUserMismatch = "user mismatch"
)

type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware with a nil verifier lets every request through unauthenticated.
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) Enabled() bool {
	return m != nil && m.verifier != nil
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.Enabled() {
			return c.Next()
		}

		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok && isWebSocketUpgrade(c) {
			token = strings.TrimSpace(c.Query("token"))
			ok = token != ""
		}
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		id, err := m.verifier.Verify(c.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals(CtxIdentityKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the verified caller, if the request was authenticated.
func IdentityFrom(c fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(CtxIdentityKey).(auth.Identity)
	return id, ok
}

// RequireSameUser rejects requests acting on behalf of a user other than the
// verified caller. Unauthenticated requests pass.
func RequireSameUser(c fiber.Ctx, userID string) error {
	id, ok := IdentityFrom(c)
	if !ok {
		return nil
	}
	if strings.TrimSpace(userID) != id.UserID {
		return NewAppError(fiber.StatusForbidden, MsgUserMismatch, nil)
	}
	return nil
}

func isWebSocketUpgrade(c fiber.Ctx) bool {
	return strings.EqualFold(strings.TrimSpace(c.Get(fiber.HeaderUpgrade)), "websocket")
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
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
