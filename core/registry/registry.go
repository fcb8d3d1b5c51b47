package registry

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry maps string keys to values that are created at most once.
type Registry[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	order []string
	sf    singleflight.Group
}

// New creates an empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{items: make(map[string]V)}
}

// Get returns the value stored under key.
func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.RLock()
	v, ok := r.items[key]
	r.mu.RUnlock()
	return v, ok
}

// GetOrCreate returns the value stored under key, building and storing it
// when absent. created reports whether this call's build function produced
// the returned value. A failed build stores nothing.
func (r *Registry[V]) GetOrCreate(key string, build func() (V, error)) (V, bool, error) {
	// Fast path
	if v, ok := r.Get(key); ok {
		return v, false, nil
	}

	created := false
	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Double-check: a previous flight may have stored the key already
		if v, ok := r.Get(key); ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.items[key] = v
		r.order = append(r.order, key)
		r.mu.Unlock()

		created = true
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	return result.(V), created, nil
}

// Len returns the number of stored values.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Keys returns the stored keys in insertion order.
func (r *Registry[V]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Values returns the stored values in insertion order.
func (r *Registry[V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]V, 0, len(r.order))
	for _, k := range r.order {
		values = append(values, r.items[k])
	}
	return values
}

// Range calls fn for each entry in insertion order until fn returns false.
// fn runs on a snapshot and may call back into the registry.
func (r *Registry[V]) Range(fn func(key string, v V) bool) {
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		if !fn(k, v) {
			return
		}
	}
}
