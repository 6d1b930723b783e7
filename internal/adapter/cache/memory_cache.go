package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/ports"
)

// MemoryCache implements ports.CacheStore over patrickmn/go-cache. Query
// results never expire on their own; the feed and the lifecycle manager keep
// them current, and Snapshot/Restore make optimistic mutations reversible.
type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *MemoryCache) Read(key string) (any, bool) {
	return m.c.Get(key)
}

func (m *MemoryCache) Write(key string, value any) {
	m.c.Set(key, value, gocache.NoExpiration)
}

func (m *MemoryCache) Invalidate(key string) {
	m.c.Delete(key)
}

func (m *MemoryCache) Keys() []string {
	items := m.c.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot copies every entry. Values holding slices are copied shallowly at
// the slice level so later in-place edits of cached lists cannot reach back
// into the snapshot.
func (m *MemoryCache) Snapshot() ports.Snapshot {
	items := m.c.Items()
	snap := make(ports.Snapshot, len(items))
	for k, item := range items {
		snap[k] = copyValue(item.Object)
	}
	return snap
}

// Restore drops the current contents and reinstates the snapshot.
func (m *MemoryCache) Restore(snap ports.Snapshot) {
	m.c.Flush()
	for k, v := range snap {
		m.c.Set(k, copyValue(v), gocache.NoExpiration)
	}
}

func copyValue(v any) any {
	switch vv := v.(type) {
	case []domain.Booking:
		out := make([]domain.Booking, len(vv))
		copy(out, vv)
		return out
	case *domain.Booking:
		b := *vv
		return &b
	case []any:
		out := make([]any, len(vv))
		copy(out, vv)
		return out
	default:
		return v
	}
}
