// Package kafka implements the event bus on a Kafka topic via franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"person-service/internal/bus"
)

// Bus publishes envelope batches to a single topic. The envelope's
// EventBusName doubles as the topic name, keeping the bus identifier on the
// wire and in the broker aligned.
type Bus struct {
	client *kgo.Client
	topic  string
}

// New connects to the brokers and ensures the topic exists.
func New(ctx context.Context, brokers []string, topic string) (*Bus, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Bus{client: client, topic: topic}, nil
}

// PutEvents publishes the whole batch in one synchronous produce call. The
// first per-record error fails the call; the relay retries the entire batch,
// so partial publication only ever results in duplicates, never loss.
func (b *Bus) PutEvents(ctx context.Context, entries []bus.Envelope) error {
	records := make([]*kgo.Record, 0, len(entries))
	for _, entry := range entries {
		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal envelope: %w", err)
		}
		records = append(records, &kgo.Record{
			Topic: b.topic,
			Key:   envelopeKey(entry),
			Value: value,
		})
	}

	results := b.client.ProduceSync(ctx, records...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("publish batch of %d: %w", len(records), err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (b *Bus) Close() {
	b.client.Close()
}

// envelopeKey keys records by the person id inside the detail payload so a
// compacted or partitioned topic keeps per-record ordering. Falls back to an
// unkeyed record when the detail has no id.
func envelopeKey(entry bus.Envelope) []byte {
	var detail struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(entry.Detail), &detail); err != nil || detail.ID == "" {
		return nil
	}
	return []byte(detail.ID)
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	_, err := adm.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("ensure topic %q: %w", topic, err)
	}
	return nil
}
