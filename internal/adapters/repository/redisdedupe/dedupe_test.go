package redisdedupe

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestDeduper(t *testing.T, ttl time.Duration) (*Deduper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDeduper(client, ttl), mr
}

func TestFirstDeliveryThenDuplicate(t *testing.T) {
	d, _ := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	first, err := d.FirstDelivery(ctx, "cb:abc123")
	require.NoError(t, err)
	require.True(t, first)

	again, err := d.FirstDelivery(ctx, "cb:abc123")
	require.NoError(t, err)
	require.False(t, again)
}

func TestDistinctInteractionsAreIndependent(t *testing.T) {
	d, _ := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	first, err := d.FirstDelivery(ctx, "cb:one")
	require.NoError(t, err)
	require.True(t, first)

	other, err := d.FirstDelivery(ctx, "cb:two")
	require.NoError(t, err)
	require.True(t, other)
}

func TestKeyExpiresAfterTTL(t *testing.T) {
	d, mr := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	first, err := d.FirstDelivery(ctx, "cb:abc123")
	require.NoError(t, err)
	require.True(t, first)

	mr.FastForward(time.Minute + time.Second)

	again, err := d.FirstDelivery(ctx, "cb:abc123")
	require.NoError(t, err)
	require.True(t, again, "expired key counts as a fresh delivery")
}
