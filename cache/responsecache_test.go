package cache

import (
	"testing"
	"time"

	"github.com/pickaboo/radiobrowser-api-go/cmn"
)

func TestResponseCacheStoresAndServesFromInProcessBackend(t *testing.T) {
	rc, err := NewResponseCache(cmn.CacheConf{Type: cmn.CacheBuiltIn, TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewResponseCache: %v", err)
	}
	defer rc.Close()

	key := NewKey("/json/countries", "")
	if _, _, _, ok := rc.Lookup(key); ok {
		t.Fatal("expected miss before any Store")
	}

	if err := rc.Store(key, 200, "application/json", []byte("[]")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	status, contentType, body, ok := rc.Lookup(key)
	if !ok {
		t.Fatal("expected hit after Store")
	}
	if status != 200 || contentType != "application/json" || string(body) != "[]" {
		t.Errorf("Lookup returned (%d, %q, %q)", status, contentType, body)
	}
}

func TestNoneBackendNeverStores(t *testing.T) {
	rc, err := NewResponseCache(cmn.CacheConf{Type: cmn.CacheNone, TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewResponseCache: %v", err)
	}
	defer rc.Close()

	key := NewKey("/json/stations", "")
	_ = rc.Store(key, 200, "application/json", []byte("[]"))
	if _, _, _, ok := rc.Lookup(key); ok {
		t.Fatal("NoneBackend must never serve a stored entry")
	}
}

func TestKeyStableAcrossEqualInputs(t *testing.T) {
	a := NewKey("/json/stations/search", "tag=rock&limit=10")
	b := NewKey("/json/stations/search", "tag=rock&limit=10")
	if a != b {
		t.Errorf("NewKey not stable: %q != %q", a, b)
	}
}
