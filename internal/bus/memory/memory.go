package memory

import (
	"context"
	"sync"

	"person-service/internal/bus"
)

// Bus records published batches in memory. It backs unit tests and local
// runs without a broker.
type Bus struct {
	mu      sync.Mutex
	batches [][]bus.Envelope

	// failNext is consumed by the next PutEvents call.
	failNext error
}

func New() *Bus {
	return &Bus{}
}

func (b *Bus) PutEvents(_ context.Context, entries []bus.Envelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failNext; err != nil {
		b.failNext = nil
		return err
	}

	batch := make([]bus.Envelope, len(entries))
	copy(batch, entries)
	b.batches = append(b.batches, batch)
	return nil
}

// Batches returns every batch published so far.
func (b *Bus) Batches() [][]bus.Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]bus.Envelope, len(b.batches))
	copy(out, b.batches)
	return out
}

// Entries returns all published envelopes flattened in publish order.
func (b *Bus) Entries() []bus.Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []bus.Envelope
	for _, batch := range b.batches {
		out = append(out, batch...)
	}
	return out
}

// FailNext makes the next PutEvents call fail with err.
func (b *Bus) FailNext(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = err
}
