// Package relay is the change-data-capture core: it consumes the record
// store's change feed and republishes every insert as a person-created event
// on the bus.
//
// Delivery is at-least-once end to end. The feed redelivers anything past
// the checkpoint, the relay never deduplicates, and the checkpoint advances
// only after a successful publish. Bus consumers that need exactly-once
// processing must be idempotent on the person id.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"person-service/internal/bus"
	"person-service/internal/changefeed"
	"person-service/internal/person/codec"
	"person-service/internal/platform/metrics"
	"person-service/internal/relay/checkpoint"
)

// Config fixes the relay's event identity and polling behavior.
type Config struct {
	// BusName is the target bus identifier stamped on every envelope.
	BusName string
	// EventType tags every envelope, e.g. "person-created".
	EventType string
	// Source tags every envelope, e.g. "person-api".
	Source string
	// PollInterval is how long to idle when the feed is drained.
	PollInterval time.Duration
	// BatchSize caps mutations per poll.
	BatchSize int
}

// Relay runs the filter → decode → wrap → publish pipeline.
type Relay struct {
	cfg     Config
	feed    changefeed.Feed
	bus     bus.Bus
	cp      checkpoint.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, feed changefeed.Feed, b bus.Bus, cp checkpoint.Store, logger *slog.Logger, m *metrics.Metrics) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Relay{cfg: cfg, feed: feed, bus: b, cp: cp, logger: logger, metrics: m}
}

// Run polls the feed until ctx is cancelled. A failed pass holds the
// checkpoint and retries the same mutations on the next tick, logging the
// error instead of exiting; only cancellation stops the loop.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.ErrorContext(ctx, "relay pass failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce drains the feed from the current checkpoint: it keeps polling full
// batches until the feed is empty, publishing and checkpointing per batch.
func (r *Relay) RunOnce(ctx context.Context) error {
	for {
		seq, err := r.cp.Load(ctx)
		if err != nil {
			return fmt.Errorf("load checkpoint: %w", err)
		}

		batch, err := r.feed.Poll(ctx, seq, r.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("poll change feed: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		if err := r.relayBatch(ctx, batch); err != nil {
			return err
		}

		last := batch[len(batch)-1].Seq
		if err := r.cp.Save(ctx, last); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}
}

// relayBatch publishes one notification batch. Zero insert mutations is a
// no-op: the publish call is skipped entirely rather than sent empty.
func (r *Relay) relayBatch(ctx context.Context, batch []changefeed.Mutation) error {
	if r.metrics != nil {
		r.metrics.RelayBatches.Inc()
	}

	entries, err := r.BuildEntries(ctx, batch)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if err := r.bus.PutEvents(ctx, entries); err != nil {
		if r.metrics != nil {
			r.metrics.RelayPublishFailures.Inc()
		}
		return fmt.Errorf("publish events: %w", err)
	}

	if r.metrics != nil {
		r.metrics.EventsPublished.Add(float64(len(entries)))
	}
	r.logger.InfoContext(ctx, "relayed insert batch",
		"mutations", len(batch),
		"events", len(entries),
		"last_seq", batch[len(batch)-1].Seq,
	)
	return nil
}

// BuildEntries turns a mutation batch into the envelope batch to publish:
// exactly one envelope per INSERT mutation, zero for anything else.
//
// A decode failure fails the whole batch. Skipping the bad record instead
// would let the checkpoint move past it and, combined with at-least-once
// redelivery, silently lose the event; failing keeps the batch in play until
// someone fixes or removes the offending row.
func (r *Relay) BuildEntries(ctx context.Context, batch []changefeed.Mutation) ([]bus.Envelope, error) {
	var entries []bus.Envelope
	for _, m := range batch {
		if m.Kind != changefeed.KindInsert {
			if r.metrics != nil {
				r.metrics.MutationsSkipped.Inc()
			}
			r.logger.DebugContext(ctx, "skipping non-insert mutation",
				"seq", m.Seq,
				"kind", string(m.Kind),
			)
			continue
		}

		person, err := codec.DecodeImage(m.Image)
		if err != nil {
			if r.metrics != nil {
				r.metrics.RelayDecodeFailures.Inc()
			}
			return nil, fmt.Errorf("mutation seq %d: %w", m.Seq, err)
		}

		detail, err := codec.EncodeImage(person)
		if err != nil {
			return nil, fmt.Errorf("mutation seq %d: %w", m.Seq, err)
		}

		entries = append(entries, bus.Envelope{
			Detail:       string(detail),
			DetailType:   r.cfg.EventType,
			EventBusName: r.cfg.BusName,
			Source:       r.cfg.Source,
		})
	}
	return entries, nil
}
