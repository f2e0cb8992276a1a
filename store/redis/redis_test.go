package redis

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	st "github.com/unkn0wn-root/parsecache/store"
)

func setup(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := New(Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return mr, s
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	mr, s := setup(t)

	require.NoError(t, s.Ping(ctx))

	mr.Close()
	assert.Error(t, s.Ping(ctx), "ping against a dead server must fail")
}

func TestPingWithAuth(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	mr.RequireAuth("sesame")

	noPass := New(Config{Addr: mr.Addr()})
	defer noPass.Close(ctx)
	assert.Error(t, noPass.Ping(ctx), "missing password must be rejected")

	withPass := New(Config{Addr: mr.Addr(), Password: "sesame"})
	defer withPass.Close(ctx)
	assert.NoError(t, withPass.Ping(ctx))
}

func TestGetSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	_, ok, err := s.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok, "absent key must be a miss, not an error")

	require.NoError(t, s.SetWithTTL(ctx, "k", "value", time.Minute))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestSetWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	mr, s := setup(t)

	require.NoError(t, s.Set(ctx, "counter", "0"))
	mr.FastForward(48 * time.Hour)

	_, ok, err := s.Get(ctx, "counter")
	require.NoError(t, err)
	assert.True(t, ok, "plain Set must not expire")
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	mr, s := setup(t)

	require.NoError(t, s.SetWithTTL(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire after its TTL")
}

func TestSetBatchPipelines(t *testing.T) {
	ctx := context.Background()
	mr, s := setup(t)

	require.NoError(t, s.SetBatch(ctx, nil, time.Minute), "empty batch is a no-op")

	entries := []st.Entry{
		{Key: "p:1", Value: "one"},
		{Key: "p:2", Value: "two"},
		{Key: "p:3", Value: "three"},
	}
	require.NoError(t, s.SetBatch(ctx, entries, time.Minute))

	for _, e := range entries {
		v, ok, err := s.Get(ctx, e.Key)
		require.NoError(t, err)
		require.True(t, ok, "key %s", e.Key)
		assert.Equal(t, e.Value, v)
	}

	// Batched entries share the batch TTL.
	mr.FastForward(2 * time.Minute)
	for _, e := range entries {
		_, ok, err := s.Get(ctx, e.Key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should have expired", e.Key)
	}
}

func TestDeleteMany(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	require.NoError(t, s.Set(ctx, "d:1", "x"))
	require.NoError(t, s.Set(ctx, "d:2", "x"))

	n, err := s.DeleteMany(ctx, []string{"d:1", "d:2", "d:ghost"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "only existing keys count")

	n, err = s.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestKeysMatching(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	require.NoError(t, s.Set(ctx, "ns:a", "1"))
	require.NoError(t, s.Set(ctx, "ns:b", "2"))
	require.NoError(t, s.Set(ctx, "other:c", "3"))

	keys, err := s.KeysMatching(ctx, "ns:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"ns:a", "ns:b"}, keys)

	keys, err = s.KeysMatching(ctx, "nothing:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestIncr(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	n, err := s.Incr(ctx, "hits")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "INCR creates missing keys at 0")

	n, err = s.Incr(ctx, "hits")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestWrap(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	_, err := Wrap(nil, false)
	assert.ErrorIs(t, err, ErrNilClient)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err := Wrap(client, false)
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	// Non-owning store must leave the client usable after Close.
	require.NoError(t, s.Close(ctx))
	assert.NoError(t, client.Ping(ctx).Err())
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	require.NoError(t, s.Close(ctx))
	assert.NoError(t, s.Close(ctx), "second close must be a no-op")
}
