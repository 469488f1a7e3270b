//go:build integration

package checkpoint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"person-service/internal/relay/checkpoint"
	"person-service/pkg/testutil/containers"
)

func TestRedisCheckpointRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	cp := checkpoint.NewRedis(rc.Client, "person-created")

	seq, err := cp.Load(ctx)
	require.NoError(t, err)
	require.Zero(t, seq, "missing checkpoint loads as zero")

	require.NoError(t, cp.Save(ctx, 7))
	seq, err = cp.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), seq)

	require.NoError(t, cp.Save(ctx, 8))
	seq, err = cp.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(8), seq)
}

func TestRedisCheckpointsAreNamespacedByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	a := checkpoint.NewRedis(rc.Client, "relay-a")
	b := checkpoint.NewRedis(rc.Client, "relay-b")

	require.NoError(t, a.Save(ctx, 5))

	seq, err := b.Load(ctx)
	require.NoError(t, err)
	require.Zero(t, seq)
}
