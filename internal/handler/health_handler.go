package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

// DI
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Kommercio API",
		"status":  "running",
	})
}

// GET /health
// DBまで疎通して初めてhealthyとする。
func (h *HealthHandler) Health(c echo.Context) error {
	var one int
	err := h.db.WithContext(c.Request().Context()).Raw("SELECT 1").Scan(&one).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
