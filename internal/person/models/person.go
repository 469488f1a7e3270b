package models

// Person is the stored record for one person.
//
// Invariants:
//   - ID is assigned by the ingestion service from the transport request id
//     and is immutable once written
//   - FirstName is 1-1024 characters
//   - LastName is at most 1024 characters (optional)
//   - PhoneNumber is at most 45 characters: an optional leading "+" followed
//     by digits and the formatting characters "-", "(", ")" and space
//   - Address is 4-1024 characters
//   - no fields beyond this set exist on the wire or in the store
//
// Exactly one record exists per ID. The write path is a pure insert; records
// are never updated or deleted by this service.
type Person struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}
