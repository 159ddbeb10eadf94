package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/arthur-gotoblink/transport-booking-console/internal/repository"
    "github.com/arthur-gotoblink/transport-booking-console/internal/upstream"
)

// BookingHandler serves the read side of the console: the booking list,
// single-booking snapshots, comment threads and the driver roster.  Reads
// go to the live upstream source first; when that fails the static
// fallback source is substituted and the response is flagged with
// X-Data-Source: fallback so the UI can show its degraded-mode banner.
// A 401 from upstream is passed through untouched so the browser clears
// its token and returns to login.
type BookingHandler struct {
    Live     upstream.DataSource
    Fallback upstream.DataSource
    Stores   *repository.SessionStores
    Log      *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.  Both sources must be
// non-nil.
func NewBookingHandler(live, fallback upstream.DataSource, stores *repository.SessionStores, log *zap.Logger) *BookingHandler {
    if live == nil || fallback == nil || stores == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Live: live, Fallback: fallback, Stores: stores, Log: log}
}

// ListBookings handles GET /api/bookings.  It fetches and normalizes the
// upstream booking page, replaces the session store's collection with the
// fresh snapshot and returns it.
func (h *BookingHandler) ListBookings(c echo.Context) error {
    ctx := c.Request().Context()
    token := bearerToken(c)

    bookings, err := h.Live.Bookings(ctx, token)
    if err != nil {
        var se *upstream.StatusError
        if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token rejected by upstream"})
        }
        h.Log.Warn("live booking fetch failed, serving fallback dataset", zap.Error(err))
        bookings, _ = h.Fallback.Bookings(ctx, token)
        c.Response().Header().Set("X-Data-Source", "fallback")
    }

    h.Stores.For(sessionKey(c)).Replace(bookings)
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id from the session store snapshot.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    b, ok := h.Stores.For(sessionKey(c)).Get(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    return c.JSON(http.StatusOK, b)
}

// BookingComments handles GET /api/bookings/:id/comments.  It fetches the
// booking's comment thread, injects it into the store and marks the
// booking as the currently-selected one, returning the full booking so the
// detail view renders in one round trip.  A failed comment fetch degrades
// to an empty thread rather than blocking the detail view.
func (h *BookingHandler) BookingComments(c echo.Context) error {
    ctx := c.Request().Context()
    token := bearerToken(c)
    id := c.Param("id")

    comments, err := h.Live.Comments(ctx, token, id)
    if err != nil {
        var se *upstream.StatusError
        if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token rejected by upstream"})
        }
        h.Log.Warn("comment fetch failed, serving empty thread",
            zap.String("booking_id", id), zap.Error(err))
        comments, _ = h.Fallback.Comments(ctx, token, id)
        c.Response().Header().Set("X-Data-Source", "fallback")
    }

    b, ok := h.Stores.For(sessionKey(c)).Select(id, comments)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    return c.JSON(http.StatusOK, b)
}

// Team handles GET /api/team, returning the driver roster for the
// allocation flow.
func (h *BookingHandler) Team(c echo.Context) error {
    ctx := c.Request().Context()
    token := bearerToken(c)

    drivers, err := h.Live.Team(ctx, token)
    if err != nil {
        var se *upstream.StatusError
        if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token rejected by upstream"})
        }
        h.Log.Warn("roster fetch failed, serving fallback roster", zap.Error(err))
        drivers, _ = h.Fallback.Team(ctx, token)
        c.Response().Header().Set("X-Data-Source", "fallback")
    }
    return c.JSON(http.StatusOK, echo.Map{"drivers": drivers})
}
