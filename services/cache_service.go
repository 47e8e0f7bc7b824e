package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zvg-webapp/zvg-backend/models"
)

// CacheSlot holds the last fetched entry list for one Land together with
// the fetch timestamp. Slots are only ever replaced whole; a reader never
// observes a half-updated slot.
type CacheSlot struct {
	Entries   []models.RawEntry
	FetchedAt time.Time
}

// IsExpired checks if the slot content is older than the given TTL
func (slot *CacheSlot) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.Sub(slot.FetchedAt) >= ttl
}

// EntryCache fronts the upstream portal with one time-boxed slot per Land.
// A fetch within the TTL window returns the stored entries without touching
// the portal; an expired or missing slot triggers a synchronous refresh.
// Concurrent refreshes for the same Land may race and fetch redundantly,
// which is acceptable; the mutex only guarantees slot consistency.
type EntryCache struct {
	provider EntryProvider
	slots    map[string]*CacheSlot
	mutex    sync.RWMutex
	ttl      time.Duration

	// now is replaceable for tests.
	now func() time.Time
}

// NewEntryCache creates an entry cache over the given provider
func NewEntryCache(provider EntryProvider, ttl time.Duration) *EntryCache {
	return &EntryCache{
		provider: provider,
		slots:    make(map[string]*CacheSlot),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Fetch returns the entries for a Land, from cache when fresh enough.
// When the upstream fetch fails and an expired slot still exists, the stale
// entries are served instead of the error; a cold-cache failure is returned
// to the caller.
func (cache *EntryCache) Fetch(ctx context.Context, land models.Land) ([]models.RawEntry, error) {
	cache.mutex.RLock()
	slot, exists := cache.slots[land.Name]
	cache.mutex.RUnlock()

	if exists && !slot.IsExpired(cache.ttl, cache.now()) {
		return slot.Entries, nil
	}

	fetchID := uuid.NewString()
	started := cache.now()

	entries, err := cache.provider.List(ctx, land)
	if err != nil {
		if exists {
			logrus.WithFields(logrus.Fields{
				"component": "EntryCache",
				"land":      land.Name,
				"fetch_id":  fetchID,
				"age":       cache.now().Sub(slot.FetchedAt),
				"error":     err,
			}).Warn("Portal fetch failed, serving stale cached entries")
			return slot.Entries, nil
		}
		return nil, err
	}

	cache.mutex.Lock()
	cache.slots[land.Name] = &CacheSlot{Entries: entries, FetchedAt: cache.now()}
	cache.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component": "EntryCache",
		"land":      land.Name,
		"fetch_id":  fetchID,
		"entries":   len(entries),
		"duration":  cache.now().Sub(started),
		"cache_ttl": cache.ttl,
	}).Info("Fetched raw entries from portal")

	return entries, nil
}

// CleanupExpired removes slots that have been stale for several TTL
// periods. Recently expired slots are kept because they back the
// stale-if-error fallback in Fetch; only slots nobody has refreshed for a
// long time are dropped.
func (cache *EntryCache) CleanupExpired() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	removed := 0
	now := cache.now()
	for key, slot := range cache.slots {
		if slot.IsExpired(4*cache.ttl, now) {
			delete(cache.slots, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached slots
func (cache *EntryCache) Size() int {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	return len(cache.slots)
}
