package model

import "testing"

func items(statuses ...ItemStatus) []Item {
    out := make([]Item, len(statuses))
    for i, s := range statuses {
        out[i] = Item{ID: "i", VehicleID: "v", Status: s}
    }
    return out
}

func TestDeriveAllDelivered(t *testing.T) {
    got := DeriveBookingStatus(items(ItemDelivered, ItemDelivered), StatusInProgress)
    if got != StatusCompleted {
        t.Fatalf("expected completed, got %s", got)
    }
}

func TestDerivePartialDeliveryIsInProgress(t *testing.T) {
    cases := [][]Item{
        items(ItemDelivered, ItemBooked),
        items(ItemCollected, ItemAllocated),
        items(ItemCollected, ItemCollected),
    }
    for i, its := range cases {
        if got := DeriveBookingStatus(its, ""); got != StatusInProgress {
            t.Fatalf("case %d: expected in progress, got %s", i, got)
        }
    }
}

func TestDeriveAnyAllocatedWinsOverBooked(t *testing.T) {
    got := DeriveBookingStatus(items(ItemAllocated, ItemBooked), StatusBooked)
    if got != StatusAllocated {
        t.Fatalf("expected allocated, got %s", got)
    }
}

func TestDeriveAllBooked(t *testing.T) {
    if got := DeriveBookingStatus(items(ItemBooked, ItemBooked), ""); got != StatusBooked {
        t.Fatalf("expected booked, got %s", got)
    }
}

func TestDeriveAllCancelled(t *testing.T) {
    if got := DeriveBookingStatus(items(ItemCancelled, ItemCancelled), StatusBooked); got != StatusCancelled {
        t.Fatalf("expected cancelled, got %s", got)
    }
}

func TestDeriveFallbacks(t *testing.T) {
    // Mixed set matching no rule keeps the current status.
    mixed := items(ItemPending, ItemBooked)
    if got := DeriveBookingStatus(mixed, StatusPendingCustomer); got != StatusPendingCustomer {
        t.Fatalf("expected current status kept, got %s", got)
    }
    // With no current status the booking falls back to pending.
    if got := DeriveBookingStatus(mixed, ""); got != StatusPending {
        t.Fatalf("expected pending, got %s", got)
    }
    // An out-of-enum current status passes through untouched.
    if got := DeriveBookingStatus(mixed, StatusUnknown); got != StatusUnknown {
        t.Fatalf("expected unknown passed through, got %s", got)
    }
}

func TestDeriveEmptyItems(t *testing.T) {
    if got := DeriveBookingStatus(nil, StatusBooked); got != StatusBooked {
        t.Fatalf("expected current status for empty items, got %s", got)
    }
    if got := DeriveBookingStatus(nil, ""); got != StatusPending {
        t.Fatalf("expected pending for empty items, got %s", got)
    }
}
