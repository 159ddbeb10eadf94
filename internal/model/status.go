package model

// DeriveBookingStatus computes a booking's aggregate status from its items'
// individual statuses.  Rules are evaluated in priority order and the first
// match wins:
//
//  1. all items delivered              -> completed
//  2. any item collected or delivered  -> in progress
//  3. any item allocated               -> allocated
//  4. all items booked                 -> booked
//  5. all items cancelled              -> cancelled
//  6. otherwise the current status is kept; with no current status the
//     booking falls back to pending.
//
// Only the allocate workflow re-runs this derivation; accept, reject and
// negotiate assign the booking status directly.  Administrative statuses
// (rejected, invoiced) are never fed back through this function.
func DeriveBookingStatus(items []Item, current BookingStatus) BookingStatus {
    if len(items) > 0 {
        switch {
        case allItems(items, ItemDelivered):
            return StatusCompleted
        case anyItem(items, ItemCollected) || anyItem(items, ItemDelivered):
            return StatusInProgress
        case anyItem(items, ItemAllocated):
            return StatusAllocated
        case allItems(items, ItemBooked):
            return StatusBooked
        case allItems(items, ItemCancelled):
            return StatusCancelled
        }
    }
    if current != "" {
        return current
    }
    return StatusPending
}

func allItems(items []Item, s ItemStatus) bool {
    for _, it := range items {
        if it.Status != s {
            return false
        }
    }
    return true
}

func anyItem(items []Item, s ItemStatus) bool {
    for _, it := range items {
        if it.Status == s {
            return true
        }
    }
    return false
}
