package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness check for load balancers and monitoring. It reports
// nothing about downstream dependencies.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
