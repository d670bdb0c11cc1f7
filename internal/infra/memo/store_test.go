package memo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))

	got, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), got)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, store.Len())
}

type flakyStore struct{ err error }

func (f flakyStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f flakyStore) Set(context.Context, string, []byte, time.Duration) error {
	return f.err
}

func TestFetchComputesOnce(t *testing.T) {
	store := NewMemoryStore()
	calls := 0
	compute := func(context.Context) (float64, error) {
		calls++
		return 42.5, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Fetch(context.Background(), store, "elev", time.Hour, compute)
		require.NoError(t, err)
		require.Equal(t, 42.5, v)
	}
	require.Equal(t, 1, calls)
}

func TestFetchDegradesOnStoreFailure(t *testing.T) {
	calls := 0
	v, err := Fetch(context.Background(), flakyStore{err: errors.New("down")}, "k", time.Hour, func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", v)
	require.Equal(t, 1, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")
	_, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, store.Len())
}
