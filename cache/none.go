package cache

import "time"

// NoneBackend never stores anything: every request is treated as a miss
// and nothing is kept.
type NoneBackend struct{}

func NewNoneBackend() *NoneBackend { return &NoneBackend{} }

func (*NoneBackend) Get(Key) (*Entry, bool)            { return nil, false }
func (*NoneBackend) Set(Key, *Entry, time.Duration) error { return nil }
func (*NoneBackend) Cleanup() error                    { return nil }
func (*NoneBackend) Close() error                       { return nil }
