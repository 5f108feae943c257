package validate

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPError converts field errors into the 400 response body handlers return
// on invalid input: {"message": ..., "errors": [{"field", "message"}, ...]}.
func HTTPError(verrs Errors) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"message": "validation failed",
		"errors":  verrs,
	})
}
