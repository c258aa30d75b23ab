// Package handler implements the HTTP surface over the booking
// engine: registration and login, browsing movies and seat
// availability, booking and cancellation, and the admin inventory
// operations.  Handlers translate inventory sentinel errors into
// status codes and never touch seat state directly.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports that the service is up.  Used by load balancers and
// monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
