package middleware

// identity.go defines helper functions shared across middleware files.  They
// read the identity values that BearerAuth stored in the Echo context and
// fall back to "guest" when no authenticated session exists (e.g. on the
// login route, which runs before any token is issued).

import (
    "github.com/labstack/echo/v4"
)

// currentSubject returns the session subject from context, or "guest".
func currentSubject(c echo.Context) string {
    if v, ok := c.Get("subject").(string); ok && v != "" {
        return v
    }
    return "guest"
}
