package model

// ItemStatus is the lifecycle state of a single vehicle item within a
// booking.  Allocation, collection and delivery are tracked per vehicle,
// never per booking, so the item is the unit of lifecycle state.
type ItemStatus string

// Item lifecycle states.  The normal progression is
// pending -> booked -> allocated -> collected -> delivered; cancelled is
// reachable from any non-terminal state via the reject workflow.  The
// collected and delivered transitions originate upstream and are never
// produced locally.
const (
    ItemPending   ItemStatus = "pending"
    ItemBooked    ItemStatus = "booked"
    ItemAllocated ItemStatus = "allocated"
    ItemCollected ItemStatus = "collected"
    ItemDelivered ItemStatus = "delivered"
    ItemCancelled ItemStatus = "cancelled"
)

// BookingStatus is the aggregate state of a booking.  Most values are
// derived from the booking's items (see DeriveBookingStatus); rejected and
// invoiced are administrative states assigned directly by a workflow and
// never re-derived.
type BookingStatus string

const (
    StatusPending         BookingStatus = "pending"
    StatusPendingCustomer BookingStatus = "pending customer"
    StatusBooked          BookingStatus = "booked"
    StatusAllocated       BookingStatus = "allocated"
    StatusInProgress      BookingStatus = "in progress"
    StatusCompleted       BookingStatus = "completed"
    StatusCancelled       BookingStatus = "cancelled"
    StatusRejected        BookingStatus = "rejected"
    StatusInvoiced        BookingStatus = "invoiced"

    // StatusUnknown is produced by the normalizer when an upstream record
    // carries no status.  It is deliberately outside the declared enum and
    // is passed through derivation untouched.
    StatusUnknown BookingStatus = "unknown"
)

// Service is a priced line item attached to a vehicle (e.g. transport,
// valet).  Services are only ever rewritten by the negotiate workflow.
type Service struct {
    Name  string  `json:"name"`
    Price float64 `json:"price"`
}

// Vehicle describes one vehicle covered by a booking.  Its identity is
// immutable; only the services list is mutable, and only via negotiation.
type Vehicle struct {
    ID       string    `json:"id"`
    Plate    string    `json:"plate"`
    Make     string    `json:"make"`
    Model    string    `json:"model"`
    Colour   string    `json:"colour"`
    Year     int       `json:"year"`
    Notes    string    `json:"notes,omitempty"`
    Services []Service `json:"services"`
}

// Item is the per-vehicle lifecycle record within a booking.  Each item
// references exactly one vehicle of the same booking by VehicleID.
type Item struct {
    ID        string     `json:"id"`
    VehicleID string     `json:"vehicleId"`
    Status    ItemStatus `json:"status"`
}

// Comment is one entry in a booking's comment thread.  The thread is
// append-only except that a user may edit or remove their own entries.
type Comment struct {
    ID        string `json:"id"`
    User      string `json:"user"`
    Message   string `json:"message"`
    Timestamp string `json:"timestamp"`
}

// Location holds a single resolved place name.  Unresolvable upstream
// locations normalize to the literal "Unknown".
type Location struct {
    Location string `json:"location"`
}

// Booking is one customer transport reservation covering one or more
// vehicles.  Invariant: len(Items) == len(Vehicles) and every item's
// VehicleID matches exactly one vehicle's ID.  Status must stay consistent
// with DeriveBookingStatus over Items, except for the administrative
// statuses rejected and invoiced.
type Booking struct {
    ID             string        `json:"id"`
    ReservationID  string        `json:"reservationId"`
    Customer       string        `json:"customer"`
    From           Location      `json:"from"`
    To             Location      `json:"to"`
    CollectionDate string        `json:"collectionDate,omitempty"`
    DeliveryDate   string        `json:"deliveryDate,omitempty"`
    Items          []Item        `json:"items"`
    Vehicles       []Vehicle     `json:"vehicles"`
    Status         BookingStatus `json:"status"`
    Comments       []Comment     `json:"comments"`
}

// Clone returns a deep copy of the booking.  The store hands out and keeps
// clones so the authoritative collection is never aliased by callers.
func (b Booking) Clone() Booking {
    out := b
    out.Items = append([]Item(nil), b.Items...)
    out.Comments = append([]Comment(nil), b.Comments...)
    out.Vehicles = make([]Vehicle, len(b.Vehicles))
    for i, v := range b.Vehicles {
        v.Services = append([]Service(nil), v.Services...)
        out.Vehicles[i] = v
    }
    return out
}

// AllocationRequest carries the input of the quick-allocate workflow: the
// selected vehicle items, the driver they are assigned to and the date.
type AllocationRequest struct {
    BookingID  string   `json:"bookingId"`
    VehicleIDs []string `json:"vehicleIds"`
    DriverID   string   `json:"driverId"`
    Date       string   `json:"date"`
}

// VehicleNegotiation is the per-vehicle part of a negotiation payload.  The
// services list fully replaces the matching vehicle's services.
type VehicleNegotiation struct {
    ID       string    `json:"id"`
    Services []Service `json:"services"`
}

// Negotiation carries the revised dates and services proposed back to the
// customer.  Date and time sub-fields are combined into a timestamp only
// when the date part is present; an omitted time defaults to 00:00.
type Negotiation struct {
    CollectionDate string               `json:"collectionDate,omitempty"`
    CollectionTime string               `json:"collectionTime,omitempty"`
    DeliveryDate   string               `json:"deliveryDate,omitempty"`
    DeliveryTime   string               `json:"deliveryTime,omitempty"`
    Vehicles       []VehicleNegotiation `json:"vehicles"`
}
