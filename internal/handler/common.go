package handler

// common.go holds small helpers shared across handler files.  They read
// the identity values the BearerAuth middleware stored in the Echo
// context.

import (
    "github.com/labstack/echo/v4"
)

// bearerToken returns the raw bearer token of the current request.
func bearerToken(c echo.Context) string {
    if v, ok := c.Get("token").(string); ok {
        return v
    }
    return ""
}

// currentUser returns the display name used to author comments.
func currentUser(c echo.Context) string {
    if v, ok := c.Get("user").(string); ok && v != "" {
        return v
    }
    return "Unknown"
}

// sessionKey scopes the per-session booking store.  The token subject is
// preferred; a token without one falls back to the token itself so the
// session still gets a stable private store.
func sessionKey(c echo.Context) string {
    if v, ok := c.Get("subject").(string); ok && v != "" {
        return v
    }
    return bearerToken(c)
}
