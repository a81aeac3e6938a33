package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
)

// RequireRole returns a middleware that lets the request through only when
// the authenticated user has one of roles.  It assumes JWTAuth (and
// normally ActiveUser) already stored the role in the context; a missing
// role is treated like a role outside the set and answered with 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	// set of allowed roles for constant-time lookups
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[Role(c)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireMinRole admits lowest and every role above it.
func RequireMinRole(lowest model.Role) echo.MiddlewareFunc {
	return RequireRole(model.RolesAtLeast(lowest)...)
}
