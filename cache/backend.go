package cache

import "time"

// Backend is the swappable storage behind ResponseCache, one per
// configured cache_type value. Get reports ok=false on both a miss and an
// expired entry; Set always (re)installs the entry with a fresh TTL.
type Backend interface {
	Get(key Key) (entry *Entry, ok bool)
	Set(key Key, entry *Entry, ttl time.Duration) error
	// Cleanup drops expired entries; backends with native per-key TTL
	// (InProcess, Redis, Memcached) implement it as a no-op.
	Cleanup() error
	Close() error
}
