package cache

import (
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/buntdb"
)

// InProcessBackend keeps cached entries in an in-memory buntdb database,
// relying on its native per-key SetOptions.TTL instead of a separate
// sweep. The cache_type=BuiltIn case.
type InProcessBackend struct {
	db *buntdb.DB
}

// NewInProcessBackend opens an ephemeral (":memory:") buntdb instance.
func NewInProcessBackend() (*InProcessBackend, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open in-process cache")
	}
	return &InProcessBackend{db: db}, nil
}

func (b *InProcessBackend) Get(key Key) (*Entry, bool) {
	var raw string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(string(key))
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if err != nil {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	entry := &Entry{}
	if _, err := entry.UnmarshalMsg(decoded); err != nil {
		return nil, false
	}
	return entry, true
}

func (b *InProcessBackend) Set(key Key, entry *Entry, ttl time.Duration) error {
	encoded, err := entry.MarshalMsg(nil)
	if err != nil {
		return err
	}
	payload := base64.StdEncoding.EncodeToString(encoded)
	return b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(string(key), payload, &buntdb.SetOptions{Expires: true, TTL: ttl})
		return err
	})
}

// Cleanup is a no-op: buntdb expires keys on access and via its own
// background sweep once TTL elapses.
func (b *InProcessBackend) Cleanup() error { return nil }

func (b *InProcessBackend) Close() error { return b.db.Close() }
