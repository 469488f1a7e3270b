// Package bus defines the event bus contract the CDC relay publishes to.
package bus

import "context"

// Envelope is the wire-level unit published to the bus: a domain event
// payload plus routing metadata. Detail carries the JSON-encoded person
// record as text; DetailType and Source are fixed per deployment, not per
// record.
type Envelope struct {
	Detail       string `json:"Detail"`
	DetailType   string `json:"DetailType"`
	EventBusName string `json:"EventBusName"`
	Source       string `json:"Source"`
}

// Bus accepts batches of envelopes. A single PutEvents call carries one
// relay batch; implementations must treat any entry-level failure as a
// failure of the whole call, since the relay's at-least-once contract hinges
// on retrying the full batch.
type Bus interface {
	PutEvents(ctx context.Context, entries []Envelope) error
}
