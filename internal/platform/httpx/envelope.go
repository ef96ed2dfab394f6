// Package httpx holds the JSON envelope, request binding and error handler shared by the echo handlers.
package httpx

import (
	"github.com/labstack/echo/v4"
)

// CacheHeader reports whether a read was served from cache (HIT or MISS).
const CacheHeader = "x-cache"

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// OK writes data in a success envelope with the given status.
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Message writes a success envelope carrying only a message.
func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: true, Message: msg})
}
