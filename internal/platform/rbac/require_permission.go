// Package rbac gates privileged routes on the caller's role using the policy engine.
package rbac

import (
	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/policy/engine"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
)

// RequirePermission ensures the caller is authenticated and the policy allows action for their role.
// Must run after middleware.RequireAuth. Returns 401 without identity, 403 when denied or when
// the policy cannot be evaluated.
func RequirePermission(evaluator engine.Evaluator, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, okUser := middleware.GetUserID(ctx)
			if !okUser {
				return apperr.Authentication("Missing or invalid authorization")
			}
			role, _ := middleware.GetRole(ctx)
			allowed, err := evaluator.Allow(ctx, engine.Input{UserID: userID, Role: role, Action: action})
			if err != nil {
				c.Logger().Errorf("authz eval %s: %v", action, err)
				return apperr.Forbidden("Insufficient permissions")
			}
			if !allowed {
				return apperr.Forbidden("Insufficient permissions")
			}
			return next(c)
		}
	}
}
