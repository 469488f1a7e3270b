// Package checkpoint persists the relay's position in the change feed. The
// checkpoint only advances after a successful publish, which is what makes
// the pipeline at-least-once: a crash or publish failure re-polls everything
// past the last saved position.
package checkpoint

import "context"

// Store holds the last fully relayed feed sequence number.
type Store interface {
	// Load returns the saved position, or 0 when no checkpoint exists yet.
	Load(ctx context.Context) (int64, error)
	// Save records seq as the new position.
	Save(ctx context.Context, seq int64) error
}
