// Package metrics tracks per-endpoint access counts and exposes them both
// as a JSON snapshot and as Prometheus metrics, via one counter map
// guarded by one mutex.
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
)

// CounterKey is the string form an AccessCounter entry takes:
// `method="M",url="U",status_code="C"`.
type CounterKey string

func counterKey(method, url string, statusCode int) CounterKey {
	return CounterKey(fmt.Sprintf(`method=%q,url=%q,status_code=%q`, method, url, fmt.Sprint(statusCode)))
}

// AccessCounter is a mutex-guarded mapping from CounterKey to a
// monotonically increasing count.
type AccessCounter struct {
	mu     sync.Mutex
	counts map[CounterKey]uint64
}

// NewAccessCounter returns an empty counter.
func NewAccessCounter() *AccessCounter {
	return &AccessCounter{counts: make(map[CounterKey]uint64)}
}

// LogOK records one successful response to method/cleanedURL with the
// actual HTTP status code.
func (a *AccessCounter) LogOK(method, cleanedURL string, statusCode int) {
	a.bump(counterKey(method, cleanedURL, statusCode))
}

// LogErr records one failed response; error entries are always keyed on
// status 500 regardless of what was actually returned.
func (a *AccessCounter) LogErr(method, cleanedURL string) {
	a.bump(counterKey(method, cleanedURL, 500))
}

func (a *AccessCounter) bump(key CounterKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[key]++
}

// Snapshot returns a point-in-time copy safe to range over without
// holding the counter's lock; PromExporter tolerates the resulting
// slight staleness.
func (a *AccessCounter) Snapshot() map[CounterKey]uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[CounterKey]uint64, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the snapshot as {"<key>": count, ...}.
func (a *AccessCounter) MarshalJSON() ([]byte, error) {
	snap := a.Snapshot()
	flat := make(map[string]uint64, len(snap))
	for k, v := range snap {
		flat[string(k)] = v
	}
	return jsoniter.Marshal(flat)
}

// ClickCounter is the relaxed-ordering atomic counter named
// "counter_click", incremented once per successful /url endpoint call.
type ClickCounter struct {
	n uint64
}

func (c *ClickCounter) Inc()          { atomic.AddUint64(&c.n, 1) }
func (c *ClickCounter) Load() uint64  { return atomic.LoadUint64(&c.n) }
