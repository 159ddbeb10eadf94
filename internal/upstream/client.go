package upstream

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "go.uber.org/zap"

    "github.com/arthur-gotoblink/transport-booking-console/internal/model"
)

// DataSource is the capability the console reads its reference data
// through.  Two implementations exist: the live Client below and the
// StaticSource fallback.  Callers pick between them with an explicit error
// check on the live result rather than exception-style control flow.
type DataSource interface {
    Bookings(ctx context.Context, token string) ([]model.Booking, error)
    Comments(ctx context.Context, token, bookingID string) ([]model.Comment, error)
    Team(ctx context.Context, token string) ([]model.Driver, error)
}

// StatusError reports a non-2xx upstream response.  Handlers use the code
// to pass provider rejections (401 in particular) through to the browser.
type StatusError struct {
    Code int
    Body string
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Body)
}

// Client is the live DataSource backed by the logistics API.  Every call
// forwards the caller's bearer token unchanged; the console holds no
// credentials of its own.
type Client struct {
    base string
    http *http.Client
    log  *zap.Logger
}

// NewClient returns a live client for the given API base URL
// (e.g. https://api.staging.example.com/v3).
func NewClient(base string, log *zap.Logger) *Client {
    return &Client{
        base: base,
        http: &http.Client{Timeout: 15 * time.Second},
        log:  log,
    }
}

// Bookings fetches the most recent booking page and normalizes each record.
// Records that fail normalization (not objects) are skipped, not fatal.
func (c *Client) Bookings(ctx context.Context, token string) ([]model.Booking, error) {
    payload, err := c.get(ctx, token, "/job/booking/search?limit=20&offset=0&sort_by=collect_after&order=desc")
    if err != nil {
        return nil, err
    }

    raw, ok := payload["bookings"].([]any)
    if !ok {
        raw, _ = payload["data"].([]any)
    }
    out := make([]model.Booking, 0, len(raw))
    for i, entry := range raw {
        b := NormalizeBooking(entry)
        if b == nil {
            c.log.Warn("skipping malformed booking record", zap.Int("index", i))
            continue
        }
        out = append(out, *b)
    }
    return out, nil
}

// Comments fetches the comment thread of one booking.  The comment search
// endpoint returns authors in a separate Users map keyed by user_id; those
// are folded into each record before normalization.
func (c *Client) Comments(ctx context.Context, token, bookingID string) ([]model.Comment, error) {
    payload, err := c.get(ctx, token,
        "/job/comment/search?booking_id="+bookingID+"&sort_by=created_at&order=desc&limit=50")
    if err != nil {
        return nil, err
    }

    raw, _ := payload["comments"].([]any)
    users := asMap(payload["Users"])
    for _, entry := range raw {
        rec := asMap(entry)
        if rec == nil || rec["user"] != nil {
            continue
        }
        if u := asMap(users[str(rec, "user_id")]); u != nil {
            rec["user"] = u
        }
    }
    return NormalizeComments(raw), nil
}

// Team fetches the driver roster.
func (c *Client) Team(ctx context.Context, token string) ([]model.Driver, error) {
    payload, err := c.get(ctx, token, "/team/member/search?limit=100&offset=0")
    if err != nil {
        return nil, err
    }
    return NormalizeTeamList(payload), nil
}

// get performs an authenticated GET against the API and decodes the JSON
// object body.  Non-2xx responses become a *StatusError carrying the
// upstream status and body.
func (c *Client) get(ctx context.Context, token, path string) (map[string]any, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Accept", "application/json")
    req.Header.Set("Authorization", "Bearer "+token)

    res, err := c.http.Do(req)
    if err != nil {
        c.log.Warn("upstream request failed", zap.String("path", path), zap.Error(err))
        return nil, err
    }
    defer res.Body.Close()

    if res.StatusCode < 200 || res.StatusCode >= 300 {
        body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
        c.log.Warn("upstream rejected request",
            zap.String("path", path), zap.Int("status", res.StatusCode))
        return nil, &StatusError{Code: res.StatusCode, Body: string(body)}
    }

    var payload map[string]any
    if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
        return nil, fmt.Errorf("decode upstream response: %w", err)
    }
    return payload, nil
}
