// Package click de-duplicates click requests from the same (ip, station)
// pair within click_valid_timeout, replacing a StationClickHistory
// lookup-before-insert with a cuckoo filter: an approximate, memory-bounded membership test instead
// of an unbounded history table.
package click

import (
	"sync"
	"time"

	cuckoo "github.com/seiflotfy/cuckoofilter"
)

// Dedup tracks recently-seen (ip, stationUUID) pairs. It rotates between
// two cuckoo filters so entries age out after between validTimeout and
// about twice that, without ever scanning or resizing a single filter.
type Dedup struct {
	mu           sync.Mutex
	validTimeout time.Duration
	capacity     uint
	current      *cuckoo.Filter
	previous     *cuckoo.Filter
	rotatedAt    time.Time
}

// NewDedup returns a Dedup that treats two (ip, stationUUID) sightings
// within validTimeout of each other as a duplicate.
func NewDedup(validTimeout time.Duration, capacity uint) *Dedup {
	if capacity == 0 {
		capacity = 1_000_000
	}
	return &Dedup{
		validTimeout: validTimeout,
		capacity:     capacity,
		current:      cuckoo.NewFilter(capacity),
		previous:     cuckoo.NewFilter(capacity),
		rotatedAt:    time.Now(),
	}
}

// Seen reports whether (ip, stationUUID) was already recorded within the
// valid-timeout window, and records it either way.
func (d *Dedup) Seen(ip, stationUUID string) bool {
	key := []byte(ip + "\x00" + stationUUID)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.rotateIfStale()

	if d.current.Lookup(key) || d.previous.Lookup(key) {
		return true
	}
	d.current.InsertUnique(key)
	return false
}

// rotateIfStale swaps current into previous and starts a fresh filter
// once validTimeout has elapsed, bounding memory growth the way a
// periodic DELETE FROM ... WHERE clicktime < now() - timeout would
// against a SQL history table.
func (d *Dedup) rotateIfStale() {
	if time.Since(d.rotatedAt) < d.validTimeout {
		return
	}
	d.previous = d.current
	d.current = cuckoo.NewFilter(d.capacity)
	d.rotatedAt = time.Now()
}
