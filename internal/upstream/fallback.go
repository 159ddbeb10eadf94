package upstream

import (
    "context"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
)

// StaticSource is the degraded-mode DataSource.  When the live API cannot
// be reached the console substitutes this fixed dataset so the UI stays
// usable in a read-mostly demo mode.  It never returns an error.
type StaticSource struct{}

// NewStaticSource returns the fallback data source.
func NewStaticSource() *StaticSource { return &StaticSource{} }

// Bookings returns a fresh copy of the demo booking set.  Copies are
// deep so callers can mutate their snapshot freely.
func (s *StaticSource) Bookings(ctx context.Context, token string) ([]model.Booking, error) {
    out := make([]model.Booking, len(fallbackBookings))
    for i := range fallbackBookings {
        out[i] = fallbackBookings[i].Clone()
    }
    return out, nil
}

// Comments returns an empty thread; the demo dataset has no external
// comment history.
func (s *StaticSource) Comments(ctx context.Context, token, bookingID string) ([]model.Comment, error) {
    return []model.Comment{}, nil
}

// Team returns the demo driver roster.
func (s *StaticSource) Team(ctx context.Context, token string) ([]model.Driver, error) {
    out := make([]model.Driver, len(fallbackDrivers))
    copy(out, fallbackDrivers)
    return out, nil
}

var fallbackBookings = []model.Booking{
    {
        ID:             "1",
        ReservationID:  "RES-001",
        Customer:       "John Smith",
        From:           model.Location{Location: "London, UK"},
        To:             model.Location{Location: "Manchester, UK"},
        CollectionDate: "2024-01-15T10:00:00Z",
        DeliveryDate:   "2024-01-16T14:00:00Z",
        Status:         model.StatusPending,
        Items: []model.Item{
            {ID: "1", VehicleID: "1", Status: model.ItemPending},
        },
        Vehicles: []model.Vehicle{
            {
                ID: "1", Plate: "ABC123", Make: "BMW", Model: "X5",
                Colour: "Black", Year: 2022,
                Services: []model.Service{{Name: "Transport", Price: 500}},
            },
        },
        Comments: []model.Comment{},
    },
    {
        ID:             "2",
        ReservationID:  "RES-002",
        Customer:       "Sarah Johnson",
        From:           model.Location{Location: "Birmingham, UK"},
        To:             model.Location{Location: "Liverpool, UK"},
        CollectionDate: "2024-01-17T09:00:00Z",
        DeliveryDate:   "2024-01-18T16:00:00Z",
        Status:         model.StatusBooked,
        Items: []model.Item{
            {ID: "2", VehicleID: "2", Status: model.ItemBooked},
        },
        Vehicles: []model.Vehicle{
            {
                ID: "2", Plate: "XYZ789", Make: "Mercedes", Model: "C-Class",
                Colour: "White", Year: 2021,
                Services: []model.Service{{Name: "Transport", Price: 450}},
            },
        },
        Comments: []model.Comment{},
    },
}

var fallbackDrivers = []model.Driver{
    {ID: "1", Name: "John Smith", Available: true},
    {ID: "2", Name: "Sarah Johnson", Available: true},
    {ID: "3", Name: "Mike Wilson", Available: true},
    {ID: "4", Name: "Emma Davis", Available: false},
    {ID: "5", Name: "David Brown", Available: true},
    {ID: "6", Name: "Lisa Chen", Available: true},
    {ID: "7", Name: "Robert Taylor", Available: true},
    {ID: "8", Name: "Jennifer Martinez", Available: true},
    {ID: "9", Name: "Michael Anderson", Available: true},
    {ID: "10", Name: "Ashley Thompson", Available: true},
    {ID: "11", Name: "Christopher Lee", Available: true},
    {ID: "12", Name: "Amanda White", Available: false},
}
