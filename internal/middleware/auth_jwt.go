package middleware

import (
	"context"
	"net/http"
	"strings"

	"kommercio/internal/domain/model"
	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// echo contextに認証済みユーザーを入れるキー
const userContextKey = "currentUser"

// tokenからユーザーを解決できるもの（AuthUsecaseが満たす）
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*model.User, error)
}

// RequireAuthはAuthorization: Bearer <token>を検証し、
// 認証済みユーザーをcontextへ入れる。
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "missing authorization header")
			}

			//"Bearer xxx"以外の形式は弾く
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthorized(c, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				//期限切れ/改ざん/ユーザー不在はusecase側のメッセージを返す
				if he, ok := usecase.AsHTTPError(err); ok {
					return c.JSON(he.Status, map[string]string{
						"error":   he.Code,
						"message": he.Message,
					})
				}
				return unauthorized(c, "invalid token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUserは認証ミドルウェアが入れたユーザーを取り出す。
// 未認証ルートで呼ぶとnil。
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}
