package repository

import (
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
)

// BookingStore owns the normalized booking collection for one user session
// together with the currently-selected booking projection.  It is the only
// writer of domain state: the four workflow operations and the three
// comment operations below are its only write paths, and every read hands
// out a deep clone so callers can never alias store-internal state.
//
// Mutations hold the store lock across the item updates, the status
// assignment, the audit comment append and the projection sync, so the
// collection and the selected projection are never observable in a
// divergent state.
type BookingStore struct {
    mu       sync.RWMutex
    bookings map[string]*model.Booking
    order    []string
    selected *model.Booking
}

// NewBookingStore returns an empty store.
func NewBookingStore() *BookingStore {
    return &BookingStore{bookings: map[string]*model.Booking{}}
}

// Replace swaps the whole collection for a freshly normalized one, keeping
// upstream ordering.  The selected projection survives only if its id is
// still present, in which case it is re-synced from the new record.
func (s *BookingStore) Replace(bookings []model.Booking) {
    s.mu.Lock()
    defer s.mu.Unlock()

    s.bookings = make(map[string]*model.Booking, len(bookings))
    s.order = s.order[:0]
    for i := range bookings {
        b := bookings[i].Clone()
        s.bookings[b.ID] = &b
        s.order = append(s.order, b.ID)
    }
    if s.selected != nil {
        if cur, ok := s.bookings[s.selected.ID]; ok {
            sel := cur.Clone()
            s.selected = &sel
        } else {
            s.selected = nil
        }
    }
}

// List returns the collection in upstream order.
func (s *BookingStore) List() []model.Booking {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]model.Booking, 0, len(s.order))
    for _, id := range s.order {
        out = append(out, s.bookings[id].Clone())
    }
    return out
}

// Get returns one booking by id.
func (s *BookingStore) Get(id string) (model.Booking, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    b, ok := s.bookings[id]
    if !ok {
        return model.Booking{}, false
    }
    return b.Clone(), true
}

// Select marks a booking as the currently-viewed one, injecting the
// comment thread fetched for it into both the collection record and the
// projection.
func (s *BookingStore) Select(id string, comments []model.Comment) (model.Booking, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[id]
    if !ok {
        return model.Booking{}, false
    }
    b.Comments = append([]model.Comment(nil), comments...)
    sel := b.Clone()
    s.selected = &sel
    return b.Clone(), true
}

// Selected returns the current projection, if any.
func (s *BookingStore) Selected() (model.Booking, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    if s.selected == nil {
        return model.Booking{}, false
    }
    return s.selected.Clone(), true
}

// Allocate runs the quick-allocate workflow: every item whose vehicle id is
// named transitions to allocated, the booking status is re-derived from the
// item set, and one audit comment is appended.  Items are set to allocated
// unconditionally; the selection UI only offers booked items but the
// operation itself trusts its caller.
func (s *BookingStore) Allocate(req model.AllocationRequest, driverName, user string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[req.BookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    wanted := make(map[string]bool, len(req.VehicleIDs))
    for _, id := range req.VehicleIDs {
        wanted[id] = true
    }
    for i := range b.Items {
        if wanted[b.Items[i].VehicleID] {
            b.Items[i].Status = model.ItemAllocated
        }
    }
    b.Status = model.DeriveBookingStatus(b.Items, b.Status)

    s.appendAudit(b, user, fmt.Sprintf("Successfully allocated %d vehicle(s) to %s for %s",
        len(req.VehicleIDs), driverName, req.Date))
    s.syncSelected(b)
    return b.Clone(), nil
}

// Accept runs the accept-job workflow: the booking becomes booked and every
// item is set to booked regardless of its prior state.
func (s *BookingStore) Accept(bookingID, user string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    b.Status = model.StatusBooked
    for i := range b.Items {
        b.Items[i].Status = model.ItemBooked
    }
    s.appendAudit(b, user, "Job accepted")
    s.syncSelected(b)
    return b.Clone(), nil
}

// Reject runs the reject-job workflow: the booking becomes rejected, every
// item is cancelled, and the audit comment embeds the reason verbatim.
func (s *BookingStore) Reject(bookingID, reason, user string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    b.Status = model.StatusRejected
    for i := range b.Items {
        b.Items[i].Status = model.ItemCancelled
    }
    s.appendAudit(b, user, "Job rejected: "+reason)
    s.syncSelected(b)
    return b.Clone(), nil
}

// Negotiate runs the negotiate-terms workflow: the booking moves to
// pending customer, the collection/delivery timestamps are rebuilt from the
// proposed date+time pairs (only when the date part is present), and each
// vehicle named in the payload has its services list fully replaced.
// Vehicles not named keep their services untouched.  The audit message is
// fixed; negotiation captures no free-text reason.
func (s *BookingStore) Negotiate(bookingID string, n model.Negotiation, user string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    b.Status = model.StatusPendingCustomer
    if n.CollectionDate != "" {
        b.CollectionDate = combineDateTime(n.CollectionDate, n.CollectionTime)
    }
    if n.DeliveryDate != "" {
        b.DeliveryDate = combineDateTime(n.DeliveryDate, n.DeliveryTime)
    }
    for _, nv := range n.Vehicles {
        for i := range b.Vehicles {
            if b.Vehicles[i].ID == nv.ID {
                b.Vehicles[i].Services = append([]model.Service(nil), nv.Services...)
                break
            }
        }
    }
    s.appendAudit(b, user, "Negotiation sent to customer")
    s.syncSelected(b)
    return b.Clone(), nil
}

// AddComment appends a new comment authored by user.  The caller guards
// against empty-after-trim input; the store trims and appends.
func (s *BookingStore) AddComment(bookingID, user, message string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    b.Comments = append(b.Comments, model.Comment{
        ID:        uuid.NewString(),
        User:      user,
        Message:   strings.TrimSpace(message),
        Timestamp: time.Now().UTC().Format(time.RFC3339),
    })
    s.syncSelected(b)
    return b.Clone(), nil
}

// EditComment replaces a comment's message and bumps its timestamp.  An
// unknown comment id leaves the thread unchanged.  Ownership is the
// presenting layer's concern; the store applies the edit it is given.
func (s *BookingStore) EditComment(bookingID, commentID, message string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    for i := range b.Comments {
        if b.Comments[i].ID == commentID {
            b.Comments[i].Message = message
            b.Comments[i].Timestamp = time.Now().UTC().Format(time.RFC3339)
            s.syncSelected(b)
            break
        }
    }
    return b.Clone(), nil
}

// RemoveComment deletes a comment by id.  No soft delete, no undo; an
// unknown id is a no-op.
func (s *BookingStore) RemoveComment(bookingID, commentID string) (model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return model.Booking{}, ErrBookingNotFound
    }

    for i := range b.Comments {
        if b.Comments[i].ID == commentID {
            b.Comments = append(b.Comments[:i], b.Comments[i+1:]...)
            s.syncSelected(b)
            break
        }
    }
    return b.Clone(), nil
}

// CommentAuthor reports the author of a comment, for ownership checks at
// the HTTP edge.
func (s *BookingStore) CommentAuthor(bookingID, commentID string) (string, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    b, ok := s.bookings[bookingID]
    if !ok {
        return "", false
    }
    for _, c := range b.Comments {
        if c.ID == commentID {
            return c.User, true
        }
    }
    return "", false
}

// appendAudit records a workflow outcome in the booking's comment thread.
// Callers must hold the write lock.
func (s *BookingStore) appendAudit(b *model.Booking, user, message string) {
    b.Comments = append(b.Comments, model.Comment{
        ID:        uuid.NewString(),
        User:      user,
        Message:   message,
        Timestamp: time.Now().UTC().Format(time.RFC3339),
    })
}

// syncSelected re-clones the mutated record into the projection when it is
// the selected booking.  Callers must hold the write lock.
func (s *BookingStore) syncSelected(b *model.Booking) {
    if s.selected != nil && s.selected.ID == b.ID {
        sel := b.Clone()
        s.selected = &sel
    }
}

// combineDateTime joins a date and an optional HH:MM time into a single
// UTC timestamp string, defaulting the time to midnight.
func combineDateTime(date, tm string) string {
    if tm == "" {
        tm = "00:00"
    }
    return date + "T" + tm + ":00Z"
}
