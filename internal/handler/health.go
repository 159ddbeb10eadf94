package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers liveness probes.  It reports the process only — upstream
// API reachability is judged per request, with the fallback dataset
// covering outages — so the body is a bare "ok".
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
