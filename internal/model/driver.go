package model

// Driver is read-only roster data fetched from the upstream team list.  A
// driver is never owned by a booking; allocation references drivers by id
// only.
//
// Fields:
//  ID        – roster identifier.
//  Name      – display name (full name, falling back to user name).
//  Available – whether the driver can currently take work.
//  Image     – optional avatar URL.
type Driver struct {
    ID        string `json:"id"`
    Name      string `json:"name"`
    Available bool   `json:"available"`
    Image     string `json:"image,omitempty"`
}
