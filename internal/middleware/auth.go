// Package middleware contains the two-stage access control gate and the
// rate limiter shared by the HTTP handlers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dashon1/creatorflow-studio/internal/auth"
	"github.com/dashon1/creatorflow-studio/internal/model"
)

// identityKey is the context key the authenticated identity is stored
// under. Handlers read it through CurrentUser, never directly.
const identityKey = "auth_user"

// UserResolver loads the authoritative identity for a verified token
// subject. *repository.UserRepo satisfies it; tests substitute stubs.
type UserResolver interface {
	GetAuthUser(ctx context.Context, id uint64) (model.AuthUser, error)
}

// Authenticate returns the authentication stage of the gate. It extracts
// the bearer token, verifies it against the signing secret, resolves the
// subject from storage on every request (no caching), and binds the typed
// identity into the context. All failures are terminal 401s; the pipeline
// never continues past a failed stage.
func Authenticate(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A bare "Bearer " header carries no token either.
			raw := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
			}

			userID, err := auth.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			// The token was valid but the subject may have vanished since
			// issuance. Storage failures also end the request here: the
			// boundary reports every authentication failure as 401.
			user, err := users.GetAuthUser(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "User not found"})
			}

			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the identity bound by Authenticate. The second
// return is false when the request never passed the authentication stage.
func CurrentUser(c echo.Context) (model.AuthUser, bool) {
	u, ok := c.Get(identityKey).(model.AuthUser)
	return u, ok
}
