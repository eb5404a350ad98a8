package middleware

import (
	"net/http"

	"kommercio/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRoleは認証済みユーザーのroleを確認する。
// RequireAuthの後段に置くこと。
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized(c, "missing authorization header")
			}

			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":   "FORBIDDEN",
					"message": "insufficient permissions",
				})
			}

			return next(c)
		}
	}
}
