package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keeps the checkpoint in a single Redis key. Useful when the relay
// runs beside a Redis deployment and the record store should stay read-only
// for the relay.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis constructs a Redis-backed checkpoint store. name distinguishes
// relays sharing one Redis.
func NewRedis(client *redis.Client, name string) *Redis {
	return &Redis{client: client, key: "relay:checkpoint:" + name}
}

func (r *Redis) Load(ctx context.Context) (int64, error) {
	seq, err := r.client.Get(ctx, r.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load checkpoint %q: %w", r.key, err)
	}
	return seq, nil
}

func (r *Redis) Save(ctx context.Context, seq int64) error {
	if err := r.client.Set(ctx, r.key, seq, 0).Err(); err != nil {
		return fmt.Errorf("save checkpoint %q: %w", r.key, err)
	}
	return nil
}
