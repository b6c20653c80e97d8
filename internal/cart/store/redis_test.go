package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "session-42"), mr
}

func TestRedisStore_LoadMissingSlot(t *testing.T) {
	rs, _ := setupTestRedis(t)

	_, err := rs.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rs, mr := setupTestRedis(t)

	lines := sampleLines()
	require.NoError(t, rs.Save(ctx, lines))

	// key carries a TTL so abandoned carts expire
	assert.Positive(t, mr.TTL("cart:session-42"))

	loaded, err := rs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(lines))
	assert.Equal(t, lines[0].Key, loaded[0].Key)
	assert.Equal(t, lines[0].UnitPrice.Amount, loaded[0].UnitPrice.Amount)
	assert.Equal(t, lines[0].Quantity, loaded[0].Quantity)
}

func TestRedisStore_CorruptSlot(t *testing.T) {
	rs, mr := setupTestRedis(t)
	mr.Set("cart:session-42", "{not json")

	_, err := rs.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	ctx := context.Background()
	rs, mr := setupTestRedis(t)
	require.NoError(t, rs.Save(ctx, sampleLines()))

	require.NoError(t, rs.Clear(ctx))
	assert.False(t, mr.Exists("cart:session-42"))
}
