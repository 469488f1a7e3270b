// Package changefeed defines the record store's change stream: an ordered,
// at-least-once sequence of row-level mutations. The feed is a single shard;
// Seq is the position within it. Consumers track their own checkpoint and
// re-poll anything past it, so delivery repeats until the checkpoint
// advances.
package changefeed

import (
	"context"
	"encoding/json"
	"time"
)

// Kind tags a mutation with the row-level operation that produced it.
type Kind string

const (
	KindInsert Kind = "INSERT"
	KindModify Kind = "MODIFY"
	KindRemove Kind = "REMOVE"
)

// Mutation is one row-level change notification.
type Mutation struct {
	// Seq is the position in the feed, strictly increasing per shard.
	Seq int64
	// Kind is the mutation type.
	Kind Kind
	// Image is the post-mutation record image. Present for inserts and
	// modifies, empty for removes.
	Image json.RawMessage
	// OccurredAt is when the store recorded the mutation.
	OccurredAt time.Time
}

// Feed is the polling surface of the change stream.
type Feed interface {
	// Poll returns up to limit mutations with Seq > afterSeq, in Seq order.
	// An empty result means the consumer is caught up.
	Poll(ctx context.Context, afterSeq int64, limit int) ([]Mutation, error)
}
