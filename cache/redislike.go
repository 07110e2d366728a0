package cache

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// RedisLikeBackend stores entries in Redis via redigo, grounded on
// ghcache's redis.Pool usage (ghcache/ghcache.go): one pooled connection
// per call, SETEX for TTL-bounded writes.
type RedisLikeBackend struct {
	pool *redis.Pool
}

// NewRedisLikeBackend dials addr lazily through a redigo pool.
func NewRedisLikeBackend(addr string) *RedisLikeBackend {
	return &RedisLikeBackend{
		pool: &redis.Pool{
			MaxIdle:     8,
			IdleTimeout: 240 * time.Second,
			Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
		},
	}
}

func (b *RedisLikeBackend) Get(key Key) (*Entry, bool) {
	conn := b.pool.Get()
	defer conn.Close()

	raw, err := redis.Bytes(conn.Do("GET", string(key)))
	if err != nil {
		return nil, false
	}
	entry := &Entry{}
	if _, err := entry.UnmarshalMsg(raw); err != nil {
		return nil, false
	}
	return entry, true
}

func (b *RedisLikeBackend) Set(key Key, entry *Entry, ttl time.Duration) error {
	conn := b.pool.Get()
	defer conn.Close()

	encoded, err := entry.MarshalMsg(nil)
	if err != nil {
		return err
	}
	_, err = conn.Do("SETEX", string(key), int(ttl.Seconds()), encoded)
	return errors.Wrap(err, "redis SETEX")
}

// Cleanup is a no-op: Redis expires keys itself once their TTL lapses.
func (b *RedisLikeBackend) Cleanup() error { return nil }

func (b *RedisLikeBackend) Close() error { return b.pool.Close() }
