package metadata

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedis_SetGetDelete(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := NewRedisRepository(rdb, "test")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "genz-auth-tokens", []byte("payload")))

	raw, err := mr.Get("test:genz-auth-tokens")
	require.NoError(t, err)
	require.Equal(t, "payload", raw)

	v, err := r.Get(ctx, "genz-auth-tokens")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), v)

	require.NoError(t, r.Delete(ctx, "genz-auth-tokens"))
	require.False(t, mr.Exists("test:genz-auth-tokens"))
	require.NoError(t, r.Delete(ctx, "genz-auth-tokens"))
}

func TestRedis_GetMissingReturnsNilNil(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := NewRedisRepository(rdb, "")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
	require.Equal(t, "genz:absent", r.key("absent"))
}

func TestRedis_ServerDownIsWrapped(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := NewRedisRepository(rdb, "test")
	mr.Close()

	_, err := r.Get(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(context.Background(), "k", nil), "failed to set metadata[k]")
}
