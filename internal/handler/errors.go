package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "todoapi/internal/errors"
)

// ErrorHandler is installed as echo's HTTPErrorHandler. It is the only place
// where errors become responses, so every failure shares the envelope and
// internal details never reach the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		err = apperrors.NewHTTPError(he.Code, echoMessage(he), "")
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"request_id", requestID(c),
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.StatusCode)
	} else {
		writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if writeErr != nil {
		slog.Warn("write error response", "request_id", requestID(c), "error", writeErr)
	}
}

func echoMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return fmt.Sprint(he.Message)
}
