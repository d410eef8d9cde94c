package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness. It deliberately touches no dependencies so a
// degraded database or broker never flaps the health check.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
