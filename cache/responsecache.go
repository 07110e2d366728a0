package cache

import (
	"time"

	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pkg/errors"
)

// ResponseCache wraps a Backend with the configured TTL. It applies no
// cacheability policy itself: the server looks every request up here and
// stores only text responses the router marks cacheable.
type ResponseCache struct {
	backend Backend
	ttl     time.Duration
}

// NewResponseCache builds the one concrete Backend cfg.Cache.Type names.
func NewResponseCache(cfg cmn.CacheConf) (*ResponseCache, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Type {
	case cmn.CacheNone:
		backend = NewNoneBackend()
	case cmn.CacheBuiltIn:
		backend, err = NewInProcessBackend()
	case cmn.CacheRedis:
		backend = NewRedisLikeBackend(cfg.URL)
	case cmn.CacheMemcached:
		backend = NewMemcachedLikeBackend(cfg.URL)
	default:
		return nil, errors.Errorf("unknown cache type %q", cfg.Type)
	}
	if err != nil {
		return nil, errors.Wrap(err, "construct cache backend")
	}
	return &ResponseCache{backend: backend, ttl: cfg.TTL}, nil
}

// Lookup returns the cached (status, contentType, body) for key, if any.
func (rc *ResponseCache) Lookup(key Key) (status int, contentType string, body []byte, ok bool) {
	entry, found := rc.backend.Get(key)
	if !found {
		return 0, "", nil, false
	}
	body, err := entry.Decompress()
	if err != nil {
		return 0, "", nil, false
	}
	return entry.Status, entry.ContentType, body, true
}

// Store compresses and installs body under key with the configured TTL.
func (rc *ResponseCache) Store(key Key, status int, contentType string, body []byte) error {
	entry, err := NewEntry(status, contentType, body)
	if err != nil {
		return cmn.NewSerializationErr(err)
	}
	return rc.backend.Set(key, entry, rc.ttl)
}

// Cleanup delegates to the backend's own sweep, a no-op for every
// backend this service ships (each has native per-key expiry) but kept
// so a future backend without one has somewhere to hook in.
func (rc *ResponseCache) Cleanup() error { return rc.backend.Cleanup() }

// Close releases the backend's resources.
func (rc *ResponseCache) Close() error { return rc.backend.Close() }
