package cache_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okairos/servibook/internal/adapter/cache"
	"github.com/okairos/servibook/internal/core/domain"
)

func TestMemoryCache_ReadWriteInvalidate(t *testing.T) {
	c := cache.NewMemoryCache()

	_, ok := c.Read("missing")
	assert.False(t, ok)

	c.Write("k", "v")
	got, ok := c.Read("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	c.Invalidate("k")
	_, ok = c.Read("k")
	assert.False(t, ok)
}

func TestMemoryCache_SnapshotRestore(t *testing.T) {
	c := cache.NewMemoryCache()
	b := domain.Booking{ID: uuid.New(), Status: domain.StatusPending}

	c.Write("list", []domain.Booking{b})
	c.Write("point", &b)

	snap := c.Snapshot()

	// Mutate after the snapshot.
	changed := b
	changed.Status = domain.StatusConfirmed
	c.Write("list", []domain.Booking{changed})
	c.Write("point", &changed)
	c.Write("extra", "added after snapshot")

	c.Restore(snap)

	list, ok := c.Read("list")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, list.([]domain.Booking)[0].Status)

	point, ok := c.Read("point")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, point.(*domain.Booking).Status)

	_, ok = c.Read("extra")
	assert.False(t, ok, "entries written after the snapshot are dropped on restore")
}

func TestMemoryCache_SnapshotIsIsolatedFromLaterEdits(t *testing.T) {
	c := cache.NewMemoryCache()
	b := domain.Booking{ID: uuid.New(), Status: domain.StatusPending}
	c.Write("list", []domain.Booking{b})

	snap := c.Snapshot()

	// Edit the cached slice in place; the snapshot copy must not see it.
	v, _ := c.Read("list")
	v.([]domain.Booking)[0].Status = domain.StatusCancelled

	c.Restore(snap)
	restored, _ := c.Read("list")
	assert.Equal(t, domain.StatusPending, restored.([]domain.Booking)[0].Status)
}

func TestMemoryCache_Keys(t *testing.T) {
	c := cache.NewMemoryCache()
	c.Write("a", 1)
	c.Write("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}
