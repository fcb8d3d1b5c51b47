// Package registry provides a concurrency-safe, identity-keyed container with
// atomic get-or-create semantics.
//
// Lookups take a read lock. Misses are funneled through a singleflight group so
// that concurrent callers asking for the same key run the constructor once and
// all observe the same value; callers asking for distinct keys proceed in
// parallel. Values are never removed, and iteration follows insertion order.
//
// # Usage
//
//	cards := registry.New[*Card]()
//	card, created, err := cards.GetOrCreate(id, func() (*Card, error) {
//	    return &Card{ID: id}, nil
//	})
package registry
