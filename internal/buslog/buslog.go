// Package buslog is the debug audit tap: a consumer-group loop that mirrors
// bus events matching a fixed (source, detail-type) pair into the structured
// log. It observes the bus independently of real subscribers and carries no
// relay logic; enabling it is a deployment decision.
package buslog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"person-service/internal/bus"
)

// Tap consumes the topic and logs matching envelopes.
type Tap struct {
	client     *kgo.Client
	source     string
	detailType string
	logger     *slog.Logger
}

// New joins the debug consumer group on the topic.
func New(brokers []string, topic, source, detailType string, logger *slog.Logger) (*Tap, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(fmt.Sprintf("%s-%s-debug", source, detailType)),
		kgo.ConsumeTopics(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect bus tap: %w", err)
	}
	return &Tap{client: client, source: source, detailType: detailType, logger: logger}, nil
}

// Run polls until ctx is cancelled. Malformed or non-matching records are
// skipped, never fatal.
func (t *Tap) Run(ctx context.Context) error {
	defer t.client.Close()

	for {
		fetches := t.client.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, fe := range errs {
				t.logger.WarnContext(ctx, "bus tap fetch error",
					"topic", fe.Topic,
					"error", fe.Err,
				)
			}
		}

		fetches.EachRecord(func(record *kgo.Record) {
			t.logRecord(ctx, record)
		})
	}
}

func (t *Tap) logRecord(ctx context.Context, record *kgo.Record) {
	var env bus.Envelope
	if err := json.Unmarshal(record.Value, &env); err != nil {
		t.logger.WarnContext(ctx, "bus tap skipping malformed record",
			"offset", record.Offset,
			"error", err,
		)
		return
	}
	if env.Source != t.source || env.DetailType != t.detailType {
		return
	}
	t.logger.InfoContext(ctx, "bus event",
		"source", env.Source,
		"detail_type", env.DetailType,
		"bus", env.EventBusName,
		"detail", env.Detail,
	)
}
