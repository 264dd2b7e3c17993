package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, their
// absence means the middleware did not run or the token lacked them.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{UserID: userID, Role: role}, nil
}
