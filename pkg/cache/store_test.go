package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, 0)
	s.now = func() time.Time { return now }

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v1"), 30*time.Second))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	now = now.Add(30 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_NoTTLAndCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 0)

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_StoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 50*time.Millisecond)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := s.Get(ctx, "k")
		return errors.Is(err, ErrMiss)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, 0)

	require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, s.Set(ctx, "c", []byte("3"), 0))

	assert.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	got, err := s.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "3", string(got))
}
