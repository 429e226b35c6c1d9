package engine

import (
	"github.com/jellydator/ttlcache/v3"

	"github.com/aethermon/ctxd/params"
)

// Registry hands out one engine per tracker ID. Engines for trackers that
// go quiet are evicted after params.TrackerTTL and rebuilt cold on the
// next tick.
type Registry struct {
	cfg    Config
	caches *ttlcache.Cache[string, *Engine]
}

func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		cfg: cfg,
		caches: ttlcache.New[string, *Engine](
			ttlcache.WithTTL[string, *Engine](params.TrackerTTL)),
	}
	go r.caches.Start()
	return r
}

// For returns the engine for id, creating it on first use.
// Access refreshes the TTL.
func (r *Registry) For(id string) *Engine {
	if item := r.caches.Get(id); item != nil {
		return item.Value()
	}
	e := New(r.cfg)
	r.caches.Set(id, e, ttlcache.DefaultTTL)
	return e
}

// Len reports the number of live engines.
func (r *Registry) Len() int { return r.caches.Len() }

// Stop halts TTL eviction.
func (r *Registry) Stop() { r.caches.Stop() }
