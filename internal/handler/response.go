package handler

import (
	"net/http"

	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// usecaseのHTTPErrorをそのままJSONにする。
// それ以外のエラーは詳細を漏らさず500。
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{
			Error:   he.Code,
			Message: he.Message,
		})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "INTERNAL",
		Message: "internal error",
	})
}
