package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

// ErrorHandler returns the echo.HTTPErrorHandler that renders every error in the
// envelope. Internal causes are logged and never sent to the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		ctx := c.Request().Context()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
		case errors.As(err, &he):
			ae = fromHTTPError(he)
		default:
			ae = apperr.Internal(err)
		}

		status := ae.HTTPStatus()
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		} else {
			logger.DebugContext(ctx, "request rejected",
				"request_id", requestID,
				"code", ae.Code,
				"message", ae.Message,
			)
		}

		body := Envelope{Error: &ErrorBody{Code: string(ae.Code), Message: ae.Message, Fields: ae.Fields}}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to send error response", "request_id", requestID, "error", err)
		}
	}
}

func fromHTTPError(he *echo.HTTPError) *apperr.Error {
	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}
	switch {
	case he.Code == http.StatusNotFound:
		return apperr.NotFound(msg)
	case he.Code == http.StatusUnauthorized:
		return apperr.Authentication(msg)
	case he.Code == http.StatusForbidden:
		return apperr.Forbidden(msg)
	case he.Code == http.StatusTooManyRequests:
		return &apperr.Error{Code: apperr.CodeRateLimited, Message: msg}
	case he.Code >= 400 && he.Code < 500:
		return &apperr.Error{Code: apperr.CodeValidation, Message: msg}
	default:
		return apperr.Internal(he)
	}
}
