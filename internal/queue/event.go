// Package queue defines message payloads exchanged over the message broker
// and the background consumer that persists them to the audit log.
package queue

// WorkflowEvent is published when one of the four booking workflows
// (accept, reject, negotiate, allocate) completes.  It carries enough
// information for downstream consumers to log or notify without querying
// the console.
type WorkflowEvent struct {
    Workflow      string `json:"workflow"`
    BookingID     string `json:"booking_id"`
    ReservationID string `json:"reservation_id"`
    Status        string `json:"status"`
    User          string `json:"user"`
    Detail        string `json:"detail,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}
