package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fyx-storefront/internal/model"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, "fyx:"), mr
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), model.KeySettings)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_CommitAndRead(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	cs := model.NewChangeset()
	require.NoError(t, cs.Put(model.KeySettings, map[string]any{"shippingFee": 29}))
	require.NoError(t, cs.Put(model.UserKey("a@b.c"), map[string]any{"wishlist": []string{"1"}}))
	require.NoError(t, cs.Put(model.UserKey("9876543210"), map[string]any{"wishlist": []string{}}))
	require.NoError(t, s.Commit(ctx, cs))

	assert.True(t, mr.Exists("fyx:settings"), "keys are namespaced")

	got, err := s.Get(ctx, model.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shippingFee":29}`, string(got))

	users, err := s.List(ctx, model.UserKeyPrefix)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Contains(t, users, "users/a@b.c")
	assert.Contains(t, users, "users/9876543210")

	del := model.NewChangeset()
	del.Delete(model.UserKey("a@b.c"))
	require.NoError(t, s.Commit(ctx, del))

	users, err = s.List(ctx, model.UserKeyPrefix)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_ListEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.List(context.Background(), model.SessionKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_ConnectionError(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), model.KeySettings)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)

	cs := model.NewChangeset()
	require.NoError(t, cs.Put("k", 1))
	assert.Error(t, s.Commit(context.Background(), cs))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := NewClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
