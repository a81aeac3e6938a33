package middleware // middleware contains reusable HTTP middleware for the API

import (
	"context"
	"errors"
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming of the Authorization header

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
	"github.com/iliyamo/screenscout/internal/service"
	"github.com/iliyamo/screenscout/internal/utils"
)

// Context keys set by JWTAuth and refreshed by ActiveUser.
const (
	CtxUserID = "user_id" // uint64
	CtxRole   = "role"    // model.Role
)

// UserLoader is the part of the user repository ActiveUser needs.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the token's user id and role in the request context.  The secret
// must match the one used when issuing tokens.  Handlers read the values via
// UserID and Role.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// ActiveUser reloads the account named by the token.  A token whose user no
// longer exists is rejected with 401, a deactivated account with 403.  The
// role stored in the context is replaced with the one in the database so a
// demotion takes effect before the token expires.  It must run after JWTAuth.
func ActiveUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			req := c.Request()
			u, err := users.GetByID(req.Context(), id)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account not found"})
			}
			if err != nil {
				return err
			}
			if !u.IsActive {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated"})
			}
			c.Set(CtxRole, u.Role)
			// services read the acting user from the request context
			c.SetRequest(req.WithContext(service.WithActor(req.Context(), u.ID)))
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok && id != 0
}

// Role returns the role of the authenticated user or "" for anonymous calls.
func Role(c echo.Context) model.Role {
	r, _ := c.Get(CtxRole).(model.Role)
	return r
}
