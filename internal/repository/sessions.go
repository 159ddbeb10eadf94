package repository

import "sync"

// SessionStores hands out one BookingStore per user session so concurrent
// users never share mutable domain state.  Sessions are keyed by the
// bearer token's subject; within one session there is a single logical
// mutator (the local user), which is the single-writer property the
// store relies on.
type SessionStores struct {
    mu     sync.Mutex
    stores map[string]*BookingStore
}

// NewSessionStores returns an empty session registry.
func NewSessionStores() *SessionStores {
    return &SessionStores{stores: map[string]*BookingStore{}}
}

// For returns the store bound to the given session key, creating it on
// first use.
func (s *SessionStores) For(key string) *BookingStore {
    s.mu.Lock()
    defer s.mu.Unlock()

    st, ok := s.stores[key]
    if !ok {
        st = NewBookingStore()
        s.stores[key] = st
    }
    return st
}
