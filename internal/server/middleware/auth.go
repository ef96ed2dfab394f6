package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/security"
)

const bearerPrefix = "bearer "

// AccessValidator verifies access tokens. Implemented by *security.TokenProvider.
type AccessValidator interface {
	ValidateAccess(token string) (*security.AccessIdentity, error)
}

// RequireAuth rejects requests without a valid Bearer access token and stores
// the caller identity in the request context. Verification is stateless: a
// revoked session keeps a valid access token usable until it expires.
func RequireAuth(tokens AccessValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return apperr.Authentication("Missing or invalid authorization")
			}
			id, err := tokens.ValidateAccess(token)
			if err != nil {
				return apperr.Authentication("Missing or invalid authorization")
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), id.UserID, id.Email, id.Role)))
			return next(c)
		}
	}
}

// extractBearer returns the token from an Authorization header value, or "" if missing or malformed.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
