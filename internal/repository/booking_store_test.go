package repository

import (
    "errors"
    "strings"
    "testing"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
)

func seedStore() *BookingStore {
    s := NewBookingStore()
    s.Replace([]model.Booking{
        {
            ID:            "B1",
            ReservationID: "RES-100",
            Customer:      "Acme",
            Status:        model.StatusBooked,
            Items: []model.Item{
                {ID: "i1", VehicleID: "V1", Status: model.ItemBooked},
                {ID: "i2", VehicleID: "V2", Status: model.ItemBooked},
            },
            Vehicles: []model.Vehicle{
                {ID: "V1", Plate: "AAA111", Services: []model.Service{{Name: "Transport", Price: 100}}},
                {ID: "V2", Plate: "BBB222", Services: []model.Service{{Name: "Transport", Price: 120}}},
            },
            Comments: []model.Comment{},
        },
        {
            ID:            "B2",
            ReservationID: "RES-101",
            Status:        model.StatusPending,
            Items:         []model.Item{{ID: "i3", VehicleID: "V3", Status: model.ItemPending}},
            Vehicles:      []model.Vehicle{{ID: "V3"}},
            Comments:      []model.Comment{},
        },
    })
    return s
}

func TestAllocateRoundTrip(t *testing.T) {
    s := seedStore()
    b, err := s.Allocate(model.AllocationRequest{
        BookingID:  "B1",
        VehicleIDs: []string{"V1"},
        DriverID:   "D1",
        Date:       "2024-03-05",
    }, "Jo Driver", "tester")
    if err != nil {
        t.Fatalf("Allocate: %v", err)
    }
    if b.Items[0].Status != model.ItemAllocated {
        t.Fatalf("expected V1 item allocated, got %s", b.Items[0].Status)
    }
    if b.Items[1].Status != model.ItemBooked {
        t.Fatalf("untargeted item must keep its status, got %s", b.Items[1].Status)
    }
    // Any allocated item makes the derived booking status allocated.
    if b.Status != model.StatusAllocated {
        t.Fatalf("expected derived status allocated, got %s", b.Status)
    }
    last := b.Comments[len(b.Comments)-1]
    if !strings.Contains(last.Message, "allocated") || !strings.Contains(last.Message, "Jo Driver") {
        t.Fatalf("audit comment missing allocation wording: %q", last.Message)
    }
    if last.User != "tester" {
        t.Fatalf("audit comment must be authored by the current user, got %q", last.User)
    }
}

func TestAllocateUnknownBooking(t *testing.T) {
    s := seedStore()
    _, err := s.Allocate(model.AllocationRequest{BookingID: "nope", VehicleIDs: []string{"V1"}}, "x", "y")
    if !errors.Is(err, ErrBookingNotFound) {
        t.Fatalf("expected ErrBookingNotFound, got %v", err)
    }
}

func TestAcceptSetsEverythingBooked(t *testing.T) {
    s := seedStore()
    b, err := s.Accept("B2", "tester")
    if err != nil {
        t.Fatalf("Accept: %v", err)
    }
    if b.Status != model.StatusBooked {
        t.Fatalf("expected booked, got %s", b.Status)
    }
    for _, it := range b.Items {
        if it.Status != model.ItemBooked {
            t.Fatalf("expected all items booked, got %s", it.Status)
        }
    }
    if len(b.Comments) != 1 || b.Comments[0].Message != "Job accepted" {
        t.Fatalf("expected single accept audit comment, got %+v", b.Comments)
    }
}

func TestRejectCancelsItemsAndKeepsReasonVerbatim(t *testing.T) {
    s := seedStore()
    const reason = "Vehicle not available"
    b, err := s.Reject("B1", reason, "tester")
    if err != nil {
        t.Fatalf("Reject: %v", err)
    }
    if b.Status != model.StatusRejected {
        t.Fatalf("expected rejected, got %s", b.Status)
    }
    for _, it := range b.Items {
        if it.Status != model.ItemCancelled {
            t.Fatalf("expected all items cancelled, got %s", it.Status)
        }
    }
    last := b.Comments[len(b.Comments)-1]
    if !strings.Contains(last.Message, reason) {
        t.Fatalf("audit comment must embed the reason verbatim: %q", last.Message)
    }
}

func TestNegotiateReplacesServicesWholesale(t *testing.T) {
    s := seedStore()
    b, err := s.Negotiate("B1", model.Negotiation{
        Vehicles: []model.VehicleNegotiation{
            {ID: "V1", Services: []model.Service{{Name: "X", Price: 10}}},
        },
    }, "tester")
    if err != nil {
        t.Fatalf("Negotiate: %v", err)
    }
    if b.Status != model.StatusPendingCustomer {
        t.Fatalf("expected pending customer, got %s", b.Status)
    }
    v1 := b.Vehicles[0]
    if len(v1.Services) != 1 || v1.Services[0].Name != "X" || v1.Services[0].Price != 10 {
        t.Fatalf("expected full service replacement on V1, got %+v", v1.Services)
    }
    v2 := b.Vehicles[1]
    if len(v2.Services) != 1 || v2.Services[0].Name != "Transport" {
        t.Fatalf("vehicle absent from payload must keep its services, got %+v", v2.Services)
    }
    // Items are untouched by negotiation.
    for _, it := range b.Items {
        if it.Status != model.ItemBooked {
            t.Fatalf("negotiate must not touch item statuses, got %s", it.Status)
        }
    }
}

func TestNegotiateDateCombining(t *testing.T) {
    s := seedStore()
    b, err := s.Negotiate("B1", model.Negotiation{
        CollectionDate: "2024-03-10",
        CollectionTime: "14:30",
        DeliveryDate:   "2024-03-11",
    }, "tester")
    if err != nil {
        t.Fatalf("Negotiate: %v", err)
    }
    if b.CollectionDate != "2024-03-10T14:30:00Z" {
        t.Fatalf("unexpected collection date: %q", b.CollectionDate)
    }
    // Time defaults to midnight when omitted.
    if b.DeliveryDate != "2024-03-11T00:00:00Z" {
        t.Fatalf("unexpected delivery date: %q", b.DeliveryDate)
    }

    // A negotiation with no date fields leaves both timestamps untouched.
    before, _ := s.Get("B2")
    after, err := s.Negotiate("B2", model.Negotiation{}, "tester")
    if err != nil {
        t.Fatalf("Negotiate: %v", err)
    }
    if after.CollectionDate != before.CollectionDate || after.DeliveryDate != before.DeliveryDate {
        t.Fatalf("dates changed without a date in the payload")
    }
}

func TestCommentLifecycle(t *testing.T) {
    s := seedStore()
    b, err := s.AddComment("B1", "ana", "  running late  ")
    if err != nil {
        t.Fatalf("AddComment: %v", err)
    }
    if len(b.Comments) != 1 {
        t.Fatalf("expected one comment, got %d", len(b.Comments))
    }
    added := b.Comments[0]
    if added.Message != "running late" || added.User != "ana" || added.ID == "" {
        t.Fatalf("unexpected comment: %+v", added)
    }

    b, err = s.EditComment("B1", added.ID, "running very late")
    if err != nil {
        t.Fatalf("EditComment: %v", err)
    }
    if b.Comments[0].Message != "running very late" {
        t.Fatalf("edit not applied: %+v", b.Comments[0])
    }

    b, err = s.RemoveComment("B1", added.ID)
    if err != nil {
        t.Fatalf("RemoveComment: %v", err)
    }
    if len(b.Comments) != 0 {
        t.Fatalf("expected empty thread after removal, got %+v", b.Comments)
    }
}

func TestEditAndRemoveUnknownCommentAreNoOps(t *testing.T) {
    s := seedStore()
    b, _ := s.AddComment("B1", "ana", "note")

    got, err := s.EditComment("B1", "missing", "changed")
    if err != nil {
        t.Fatalf("EditComment: %v", err)
    }
    if len(got.Comments) != 1 || got.Comments[0].Message != "note" {
        t.Fatalf("edit of unknown id must leave the thread unchanged: %+v", got.Comments)
    }

    got, err = s.RemoveComment("B1", "missing")
    if err != nil {
        t.Fatalf("RemoveComment: %v", err)
    }
    if len(got.Comments) != len(b.Comments) {
        t.Fatalf("remove of unknown id must leave the thread unchanged")
    }
}

func TestSelectedProjectionStaysInSync(t *testing.T) {
    s := seedStore()
    if _, ok := s.Select("B1", []model.Comment{{ID: "c0", User: "sys", Message: "thread"}}); !ok {
        t.Fatalf("Select failed")
    }

    if _, err := s.AddComment("B1", "ana", "hello"); err != nil {
        t.Fatalf("AddComment: %v", err)
    }
    sel, ok := s.Selected()
    if !ok {
        t.Fatalf("expected a selected booking")
    }
    col, _ := s.Get("B1")
    if len(sel.Comments) != len(col.Comments) {
        t.Fatalf("projection diverged from collection: %d vs %d", len(sel.Comments), len(col.Comments))
    }

    if _, err := s.Reject("B1", "no driver", "ana"); err != nil {
        t.Fatalf("Reject: %v", err)
    }
    sel, _ = s.Selected()
    if sel.Status != model.StatusRejected {
        t.Fatalf("projection missed the workflow mutation: %s", sel.Status)
    }

    // Mutating a different booking leaves the projection alone.
    if _, err := s.Accept("B2", "ana"); err != nil {
        t.Fatalf("Accept: %v", err)
    }
    sel, _ = s.Selected()
    if sel.ID != "B1" || sel.Status != model.StatusRejected {
        t.Fatalf("projection changed by unrelated mutation: %+v", sel)
    }
}

func TestReplaceKeepsSelectionOnlyWhenIDSurvives(t *testing.T) {
    s := seedStore()
    s.Select("B1", nil)

    s.Replace([]model.Booking{{ID: "B1", Status: model.StatusInvoiced}})
    sel, ok := s.Selected()
    if !ok || sel.Status != model.StatusInvoiced {
        t.Fatalf("expected selection re-synced from new record, got %+v ok=%v", sel, ok)
    }

    s.Replace([]model.Booking{{ID: "B9"}})
    if _, ok := s.Selected(); ok {
        t.Fatalf("expected selection cleared when id disappears")
    }
}

func TestSnapshotsDoNotAliasStoreState(t *testing.T) {
    s := seedStore()
    b, _ := s.Get("B1")
    b.Items[0].Status = model.ItemDelivered
    b.Vehicles[0].Services[0].Price = 999

    again, _ := s.Get("B1")
    if again.Items[0].Status != model.ItemBooked {
        t.Fatalf("caller mutation leaked into the store")
    }
    if again.Vehicles[0].Services[0].Price != 100 {
        t.Fatalf("caller service mutation leaked into the store")
    }
}

func TestSessionStoresAreIsolated(t *testing.T) {
    ss := NewSessionStores()
    a := ss.For("alice")
    b := ss.For("bob")
    if a == b {
        t.Fatalf("expected distinct stores per session")
    }
    if ss.For("alice") != a {
        t.Fatalf("expected stable store per session key")
    }

    a.Replace([]model.Booking{{ID: "B1"}})
    if _, ok := b.Get("B1"); ok {
        t.Fatalf("sessions must not share bookings")
    }
}
