// Package upstream talks to the third-party logistics API and converts its
// loosely-typed JSON into the strict internal domain model.  Normalization
// fails soft: a malformed record yields defaults (or nil for a record that
// is not an object at all), never an error.
package upstream

import (
    "strconv"
    "time"

    "github.com/google/uuid"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
)

// NormalizeBooking converts one raw upstream booking record into a domain
// Booking.  It returns nil when raw is not a JSON object.  Every field read
// falls back to a default so a partially-malformed record still yields a
// usable booking: unresolved locations become "Unknown" and an absent
// status becomes "unknown".  Origin and destination are picked out of the
// unordered locations array by the order discriminant (1 = origin,
// 2 = destination).  Vehicle services are left empty here; they are only
// populated by the in-app negotiate workflow.
func NormalizeBooking(raw any) *model.Booking {
    rec, ok := raw.(map[string]any)
    if !ok || rec == nil {
        return nil
    }

    b := &model.Booking{
        ID:             str(rec, "id"),
        ReservationID:  str(rec, "tracking_number"),
        Customer:       orUnknown(str(asMap(rec["shipper"]), "full_name")),
        From:           model.Location{Location: localityByOrder(rec["locations"], 1)},
        To:             model.Location{Location: localityByOrder(rec["locations"], 2)},
        CollectionDate: str(rec, "collect_after"),
        DeliveryDate:   str(rec, "deliver_before"),
        Items:          []model.Item{},
        Vehicles:       []model.Vehicle{},
        Status:         model.BookingStatus(orDefault(str(rec, "status"), string(model.StatusUnknown))),
    }

    if items, ok := rec["items"].([]any); ok {
        for _, entry := range items {
            item, ok := entry.(map[string]any)
            if !ok {
                continue
            }
            vehicle := asMap(item["vehicle"])
            b.Items = append(b.Items, model.Item{
                ID:        str(item, "id"),
                VehicleID: str(vehicle, "id"),
                Status:    model.ItemStatus(orDefault(str(item, "status"), string(model.ItemPending))),
            })
            b.Vehicles = append(b.Vehicles, model.Vehicle{
                ID:       str(vehicle, "id"),
                Plate:    str(vehicle, "vehicle_registration_plate"),
                Make:     str(vehicle, "make"),
                Model:    str(vehicle, "model"),
                Colour:   str(vehicle, "colour"),
                Year:     num(vehicle, "year"),
                Notes:    str(vehicle, "notes"),
                Services: []model.Service{},
            })
        }
    }

    // Seed the thread with the creation entry so a freshly-loaded booking
    // already shows who created it and when.
    b.Comments = []model.Comment{{
        ID:        uuid.NewString(),
        User:      orUnknown(str(asMap(rec["user"]), "full_name")),
        Message:   "Booking created",
        Timestamp: str(rec, "created_at"),
    }}

    return b
}

// NormalizeComments converts raw upstream comment records into domain
// comments.  Each entry is defaulted independently; a missing id is
// replaced with a freshly generated one so list identity keys never
// collide.  The author can arrive under user or created_by and the message
// under comment, message or text, depending on the upstream endpoint.
func NormalizeComments(raw []any) []model.Comment {
    out := make([]model.Comment, 0, len(raw))
    for _, entry := range raw {
        rec := asMap(entry)

        author := asMap(rec["user"])
        if author == nil {
            author = asMap(rec["created_by"])
        }
        name := str(author, "full_name")
        if name == "" {
            name = str(author, "name")
        }

        msg := str(rec, "comment")
        if msg == "" {
            msg = str(rec, "message")
        }
        if msg == "" {
            msg = str(rec, "text")
        }

        ts := str(rec, "created_at")
        if ts == "" {
            ts = str(rec, "updated_at")
        }
        if ts == "" {
            ts = str(rec, "timestamp")
        }
        if ts == "" {
            ts = time.Now().UTC().Format(time.RFC3339)
        }

        out = append(out, model.Comment{
            ID:        orDefault(str(rec, "id"), uuid.NewString()),
            User:      orUnknown(name),
            Message:   msg,
            Timestamp: ts,
        })
    }
    return out
}

// NormalizeTeamList converts the raw roster payload into drivers.  It
// returns an empty slice when the users array is absent.  A driver with no
// explicit status defaults to available.
func NormalizeTeamList(raw any) []model.Driver {
    rec := asMap(raw)
    users, ok := rec["users"].([]any)
    if !ok {
        return []model.Driver{}
    }
    out := make([]model.Driver, 0, len(users))
    for _, entry := range users {
        u := asMap(entry)
        name := str(u, "full_name")
        if name == "" {
            name = str(u, "user_name")
        }
        status := str(u, "status")
        out = append(out, model.Driver{
            ID:        str(u, "id"),
            Name:      orUnknown(name),
            Available: status == "" || status == "active" || status == "available",
            Image:     str(u, "image"),
        })
    }
    return out
}

// localityByOrder picks the address locality of the location entry whose
// order matches, or "Unknown" when no such entry exists.
func localityByOrder(raw any, order int) string {
    locations, ok := raw.([]any)
    if !ok {
        return "Unknown"
    }
    for _, entry := range locations {
        loc := asMap(entry)
        if num(loc, "order") != order {
            continue
        }
        return orUnknown(str(asMap(loc["address"]), "address_locality"))
    }
    return "Unknown"
}

func asMap(v any) map[string]any {
    m, _ := v.(map[string]any)
    return m
}

// str reads a string field, stringifying bare numbers since some upstream
// ids arrive numeric.
func str(m map[string]any, key string) string {
    if m == nil {
        return ""
    }
    switch v := m[key].(type) {
    case string:
        return v
    case float64:
        if v == float64(int64(v)) {
            return strconv.FormatInt(int64(v), 10)
        }
        return ""
    default:
        return ""
    }
}

func num(m map[string]any, key string) int {
    if m == nil {
        return 0
    }
    if v, ok := m[key].(float64); ok {
        return int(v)
    }
    return 0
}

func orUnknown(s string) string {
    return orDefault(s, "Unknown")
}

func orDefault(s, def string) string {
    if s == "" {
        return def
    }
    return s
}
