package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedLikeBackend stores entries in Memcached via the canonical
// bradfitz client, the cache_type=Memcached case.
type MemcachedLikeBackend struct {
	client *memcache.Client
}

// NewMemcachedLikeBackend connects to one or more "host:port" servers.
func NewMemcachedLikeBackend(servers ...string) *MemcachedLikeBackend {
	return &MemcachedLikeBackend{client: memcache.New(servers...)}
}

func (b *MemcachedLikeBackend) Get(key Key) (*Entry, bool) {
	item, err := b.client.Get(string(key))
	if err != nil {
		return nil, false
	}
	entry := &Entry{}
	if _, err := entry.UnmarshalMsg(item.Value); err != nil {
		return nil, false
	}
	return entry, true
}

func (b *MemcachedLikeBackend) Set(key Key, entry *Entry, ttl time.Duration) error {
	encoded, err := entry.MarshalMsg(nil)
	if err != nil {
		return err
	}
	return b.client.Set(&memcache.Item{
		Key:        string(key),
		Value:      encoded,
		Expiration: int32(ttl.Seconds()),
	})
}

// Cleanup is a no-op: Memcached evicts on its own expiration clock.
func (b *MemcachedLikeBackend) Cleanup() error { return nil }

func (b *MemcachedLikeBackend) Close() error { return nil }
