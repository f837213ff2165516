package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.False(t, ok)

	rec := Record{Code: "123456", IssuedAt: time.Now()}
	require.NoError(t, store.Put(ctx, "9876543210", rec, DefaultTTL))

	got, ok, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec.Code, got.Code)

	require.NoError(t, store.Delete(ctx, "9876543210"))
	_, ok, err = store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "9876543210", Record{Code: "111111", Attempts: 2}, DefaultTTL))
	require.NoError(t, store.Put(ctx, "9876543210", Record{Code: "222222"}, DefaultTTL))

	got, ok, err := store.Get(ctx, "9876543210")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "222222", got.Code)
	require.Zero(t, got.Attempts)
}

func TestMemoryStoreKeysArePerPhone(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "1111111111", Record{Code: "111111"}, DefaultTTL))
	require.NoError(t, store.Put(ctx, "2222222222", Record{Code: "222222"}, DefaultTTL))
	require.NoError(t, store.Delete(ctx, "1111111111"))

	_, ok, _ := store.Get(ctx, "1111111111")
	require.False(t, ok)
	got, ok, _ := store.Get(ctx, "2222222222")
	require.True(t, ok)
	require.Equal(t, "222222", got.Code)
}
