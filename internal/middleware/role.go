package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns the authorization stage of the gate. It must run
// after Authenticate: it reads the typed identity and requires an admin
// or super_admin role. A missing identity or an insufficient role is a
// terminal 403, distinct from the 401s of the authentication stage.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok || !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}
