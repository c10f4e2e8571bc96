package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "usermgmt/internal/errors"
)

// errorWriter maps service errors to HTTP responses. Unexpected errors keep
// their detail in the log; the client sees a generic message unless the app
// runs in debug (non-production) mode.
type errorWriter struct {
	debug bool
}

func (w errorWriter) write(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
		if w.debug {
			httpErr.Message = err.Error()
		}
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
