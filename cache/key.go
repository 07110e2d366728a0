// Package cache implements ResponseCache: a façade in front of swappable
// backends (none/builtin/redis/memcached), keyed by the request's method,
// path and canonical parameter string, with entries expiring after
// cache_ttl.
package cache

import (
	"strconv"

	xxhash "github.com/OneOfOne/xxhash"
)

// Key is the canonical, fixed-width identifier a Backend stores an entry
// under — the request path plus its canonical parameter string, hashed so
// backends with key-length limits (Memcached's 250 bytes) never choke on
// a long "search" URL.
type Key string

// NewKey derives a Key from path and query exactly as given; it does not
// reorder anything itself. The server passes the method plus the uncleaned
// request path, and a query string already serialized in a canonical
// order, so requests differing only in parameter order get the same Key.
func NewKey(path, query string) Key {
	h := xxhash.New64()
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte{'?'})
	_, _ = h.Write([]byte(query))
	return Key(strconv.FormatUint(h.Sum64(), 16))
}
