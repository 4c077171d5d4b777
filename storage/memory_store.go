package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"listing-monitor/models"
)

// MemoryStore is an in-process SnapshotStore. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]models.PersistedListing
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]models.PersistedListing), now: time.Now}
}

func (m *MemoryStore) ListAll(_ context.Context) ([]models.PersistedListing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.PersistedListing, 0, len(m.rows))
	for _, l := range m.rows {
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ScrapedAt.Equal(out[j].ScrapedAt) {
			return out[i].URL < out[j].URL
		}
		return out[i].ScrapedAt.After(out[j].ScrapedAt)
	})
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[string]models.PersistedListing)
	return nil
}

func (m *MemoryStore) Upsert(_ context.Context, url, price string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[url] = models.PersistedListing{URL: url, Price: price, ScrapedAt: m.now()}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
