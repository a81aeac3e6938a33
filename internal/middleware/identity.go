package middleware

// identity.go holds the caller identity used to namespace rate limit keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// subject returns the decimal user id of the caller, or "anon" when the
// request is not authenticated.  Public routes never run JWTAuth, so they
// always count against the anonymous bucket of the client IP.
func subject(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
