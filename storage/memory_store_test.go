package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	clock := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	require.NoError(t, m.Upsert(ctx, "A", "€ 1"))
	require.NoError(t, m.Upsert(ctx, "B", "€ 2"))
	require.NoError(t, m.Upsert(ctx, "A", "€ 3"))

	got, err := m.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].URL, "most recently seen first")
	assert.Equal(t, "€ 3", got[0].Price)
	assert.Equal(t, "B", got[1].URL)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Upsert(ctx, "A", ""))
	require.NoError(t, m.Clear(ctx))

	got, err := m.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
