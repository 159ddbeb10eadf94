// Package repository holds the in-memory booking store and the sentinel
// errors shared with the handler layer.  Sentinels let handlers map
// store failures onto HTTP status codes without string matching.
package repository

import "errors"

// ErrBookingNotFound is returned when an operation names a booking id
// that is not in the session's collection.  Handlers translate this
// into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as editing another user's comment.
// Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
