package rules

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/aethermon/ctxd/types/label"
	"github.com/aethermon/ctxd/types/snapshot"
)

// Evaluator evaluates a fixed rule set, memoizing results by the snapshot's
// structural hash. Ticks repeat themselves a lot (same Wi-Fi, same couch),
// and the sort-and-scan is pure, so an LRU in front of it is free accuracy-
// wise. On hash failure it just evaluates.
type Evaluator struct {
	rules []Rule
	memo  *lru.Cache[uint64, label.Label]
}

// NewEvaluator returns an Evaluator over rules with a memo of the given
// size. Size ≤ 0 disables memoization.
func NewEvaluator(rules []Rule, memoSize int) *Evaluator {
	e := &Evaluator{rules: rules}
	if memoSize > 0 {
		// Errors only on size <= 0, which is excluded above.
		e.memo, _ = lru.New[uint64, label.Label](memoSize)
	}
	return e
}

// Evaluate matches the snapshot against the rule set.
func (e *Evaluator) Evaluate(snap snapshot.Snapshot) label.Label {
	if e.memo == nil {
		return Evaluate(e.rules, snap)
	}
	hash, err := hashstructure.Hash(snap, hashstructure.FormatV2, nil)
	if err != nil {
		return Evaluate(e.rules, snap)
	}
	if cached, ok := e.memo.Get(hash); ok {
		return cached
	}
	result := Evaluate(e.rules, snap)
	e.memo.Add(hash, result)
	return result
}
