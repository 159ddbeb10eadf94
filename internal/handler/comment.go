package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/arthur-gotoblink/transport-booking-console/internal/repository"
)

// CommentHandler exposes the comment thread operations.  Threads are
// append-only except that users may edit or remove their own entries; the
// ownership check lives here at the HTTP edge since a server surface has
// no trusted presenting layer in front of it.
type CommentHandler struct {
    Stores *repository.SessionStores
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(stores *repository.SessionStores) *CommentHandler {
    if stores == nil {
        panic("nil stores passed to NewCommentHandler")
    }
    return &CommentHandler{Stores: stores}
}

type commentReq struct {
    Message string `json:"message"`
}

// AddComment handles POST /api/bookings/:id/comments.  The message must be
// non-empty after trimming.
func (h *CommentHandler) AddComment(c echo.Context) error {
    var req commentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Message) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
    }

    b, err := h.Stores.For(sessionKey(c)).AddComment(c.Param("id"), currentUser(c), req.Message)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    return c.JSON(http.StatusCreated, b)
}

// EditComment handles PUT /api/bookings/:id/comments/:commentId.  Only the
// author may edit their comment; editing an unknown comment id is a 404
// here even though the store itself treats it as a no-op.
func (h *CommentHandler) EditComment(c echo.Context) error {
    var req commentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Message) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
    }

    store := h.Stores.For(sessionKey(c))
    bookingID, commentID := c.Param("id"), c.Param("commentId")

    author, ok := store.CommentAuthor(bookingID, commentID)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
    }
    if author != currentUser(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your comment"})
    }

    b, err := store.EditComment(bookingID, commentID, req.Message)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    return c.JSON(http.StatusOK, b)
}

// RemoveComment handles DELETE /api/bookings/:id/comments/:commentId.
// Removal is hard: no soft delete, no undo.  An unknown comment id leaves
// the thread unchanged.
func (h *CommentHandler) RemoveComment(c echo.Context) error {
    store := h.Stores.For(sessionKey(c))
    bookingID, commentID := c.Param("id"), c.Param("commentId")

    if author, ok := store.CommentAuthor(bookingID, commentID); ok && author != currentUser(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your comment"})
    }

    b, err := store.RemoveComment(bookingID, commentID)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    return c.JSON(http.StatusOK, b)
}
