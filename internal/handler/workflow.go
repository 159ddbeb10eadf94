package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
    "github.com/arthur-gotoblink/transport-booking-console/internal/queue"
    "github.com/arthur-gotoblink/transport-booking-console/internal/repository"
    queue_publisher "github.com/arthur-gotoblink/transport-booking-console/internal/service"
)

// WorkflowHandler exposes the four mutating booking workflows.  Each
// endpoint validates the caller-side preconditions (the core engine stays
// permissive and trusts its caller), runs the store mutation, publishes a
// workflow audit event, and responds with the updated booking snapshot so
// the UI re-renders without a refetch.
type WorkflowHandler struct {
    Stores *repository.SessionStores
    Audit  bool // publish workflow events to the broker
    Log    *zap.Logger
}

// NewWorkflowHandler constructs a WorkflowHandler.
func NewWorkflowHandler(stores *repository.SessionStores, audit bool, log *zap.Logger) *WorkflowHandler {
    if stores == nil {
        panic("nil stores passed to NewWorkflowHandler")
    }
    return &WorkflowHandler{Stores: stores, Audit: audit, Log: log}
}

// ----- DTOs -----

type allocateReq struct {
    VehicleIDs []string `json:"vehicle_ids"`
    DriverID   string   `json:"driver_id"`
    DriverName string   `json:"driver_name"`
    Date       string   `json:"date"`
}

type rejectReq struct {
    Reason string `json:"reason"`
}

// Allocate handles POST /api/bookings/:id/allocate.  Every item whose
// vehicle id is named transitions to allocated and the booking status is
// re-derived from the item set.
func (h *WorkflowHandler) Allocate(c echo.Context) error {
    var req allocateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(req.VehicleIDs) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_ids must not be empty"})
    }
    if req.DriverID == "" || req.Date == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "driver_id and date are required"})
    }

    driverName := req.DriverName
    if driverName == "" {
        driverName = req.DriverID
    }
    alloc := model.AllocationRequest{
        BookingID:  c.Param("id"),
        VehicleIDs: req.VehicleIDs,
        DriverID:   req.DriverID,
        Date:       req.Date,
    }

    b, err := h.Stores.For(sessionKey(c)).Allocate(alloc, driverName, currentUser(c))
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    h.publish("allocate", b, currentUser(c), "driver="+req.DriverID+" date="+req.Date)
    return c.JSON(http.StatusOK, b)
}

// Accept handles POST /api/bookings/:id/accept.
func (h *WorkflowHandler) Accept(c echo.Context) error {
    b, err := h.Stores.For(sessionKey(c)).Accept(c.Param("id"), currentUser(c))
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    h.publish("accept", b, currentUser(c), "")
    return c.JSON(http.StatusOK, b)
}

// Reject handles POST /api/bookings/:id/reject.  The reason is required
// and is embedded verbatim in the audit comment.
func (h *WorkflowHandler) Reject(c echo.Context) error {
    var req rejectReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Reason) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
    }

    b, err := h.Stores.For(sessionKey(c)).Reject(c.Param("id"), req.Reason, currentUser(c))
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    h.publish("reject", b, currentUser(c), req.Reason)
    return c.JSON(http.StatusOK, b)
}

// Negotiate handles POST /api/bookings/:id/negotiate.  The payload carries
// proposed dates and per-vehicle service rewrites.
func (h *WorkflowHandler) Negotiate(c echo.Context) error {
    var req model.Negotiation
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    b, err := h.Stores.For(sessionKey(c)).Negotiate(c.Param("id"), req, currentUser(c))
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    h.publish("negotiate", b, currentUser(c), "")
    return c.JSON(http.StatusOK, b)
}

// publish sends a workflow audit event to the broker without blocking or
// failing the request.
func (h *WorkflowHandler) publish(workflow string, b model.Booking, user, detail string) {
    if !h.Audit {
        return
    }
    ev := queue.WorkflowEvent{
        Workflow:      workflow,
        BookingID:     b.ID,
        ReservationID: b.ReservationID,
        Status:        string(b.Status),
        User:          user,
        Detail:        detail,
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := queue_publisher.PublishWorkflowEvent(ctx, ev); err != nil {
            h.Log.Warn("audit event publish failed", zap.String("workflow", workflow), zap.Error(err))
        }
    }()
}
