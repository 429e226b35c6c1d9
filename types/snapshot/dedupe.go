package snapshot

import (
	"fmt"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
)

// NewDedupeLRUFunc returns a pass-function for a tick stream which reports
// true for ticks not recently seen, using a Least Recently Used (LRU) cache
// over the snapshot's structural hash. Re-delivered ticks (e.g. a flaky
// sensor bridge replaying its send buffer) would otherwise double-count
// exposure minutes.
func NewDedupeLRUFunc(size int) func(Snapshot, Extras) bool {
	var dedupeCache = lru.New(size)
	type keyed struct {
		S Snapshot
		X Extras
	}
	return func(snap Snapshot, extras Extras) bool {
		hash, err := hashstructure.Hash(keyed{snap, extras}, hashstructure.FormatV2, nil)
		if err != nil {
			return false
		}
		key := fmt.Sprintf("%d", hash)
		_, ok := dedupeCache.Get(key)
		if ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}
