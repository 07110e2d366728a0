package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Janitor runs ResponseCache.Cleanup on a fixed interval until its
// context is cancelled. A standalone ticker, since this module has no
// cluster-wide housekeeping registry to join.
type Janitor struct {
	cache    *ResponseCache
	interval time.Duration
	log      *logrus.Entry
}

// NewJanitor builds a Janitor that sweeps cache every interval.
func NewJanitor(cache *ResponseCache, interval time.Duration, log *logrus.Entry) *Janitor {
	return &Janitor{cache: cache, interval: interval, log: log.WithField("component", "janitor")}
}

// Run blocks, sweeping on each tick, until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("janitor stopping")
			return
		case <-ticker.C:
			if err := j.cache.Cleanup(); err != nil {
				j.log.WithError(err).Warn("cache cleanup failed")
			}
		}
	}
}
