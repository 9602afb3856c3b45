package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
)

// DekCache is a process-local TTL cache for plaintext DEK key material.
//
// Unwrapping a DEK is a remote KMS call; the cache bounds how often that
// call happens without holding plaintext keys indefinitely. Entries expire
// after the configured TTL and are zeroed on eviction. A TTL of zero
// disables caching entirely.
//
// The cache stores copies of the keys it is given and returns copies to
// callers, so the cached material is never aliased by caller slices.
type DekCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*dekCacheEntry
}

type dekCacheEntry struct {
	key       []byte
	expiresAt time.Time
}

// NewDekCache creates a DekCache with the given entry TTL.
func NewDekCache(ttl time.Duration) *DekCache {
	return &DekCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*dekCacheEntry),
	}
}

// Get returns a copy of the cached plaintext key for the DEK ID, or false
// if the entry is absent or expired. Expired entries are zeroed and removed.
func (c *DekCache) Get(dekID uuid.UUID) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[dekID]
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		cryptoDomain.Zero(entry.key)
		delete(c.entries, dekID)
		return nil, false
	}

	key := make([]byte, len(entry.key))
	copy(key, entry.key)
	return key, true
}

// Set stores a copy of the plaintext key for the DEK ID. Expired entries
// found during the sweep are zeroed and removed.
func (c *DekCache) Set(dekID uuid.UUID, key []byte) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			cryptoDomain.Zero(entry.key)
			delete(c.entries, id)
		}
	}

	stored := make([]byte, len(key))
	copy(stored, key)

	if old, ok := c.entries[dekID]; ok {
		cryptoDomain.Zero(old.key)
	}
	c.entries[dekID] = &dekCacheEntry{
		key:       stored,
		expiresAt: now.Add(c.ttl),
	}
}

// Purge zeroes and removes all entries. Called on shutdown.
func (c *DekCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, entry := range c.entries {
		cryptoDomain.Zero(entry.key)
		delete(c.entries, id)
	}
}

// Len returns the number of cached entries, including not-yet-swept expired ones.
func (c *DekCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
