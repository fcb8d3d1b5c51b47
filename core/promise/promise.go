package promise

import (
	"context"
	"errors"
	"sync"

	"card-catalog/core/registry"
)

// ErrAlreadyResolved is returned when a promise is resolved a second time.
var ErrAlreadyResolved = errors.New("promise already resolved")

// Promise is a value that becomes available exactly once.
type Promise[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
}

// New creates an unresolved promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolve publishes v to all current and future waiters.
func (p *Promise[T]) Resolve(v T) error {
	resolved := false
	p.once.Do(func() {
		p.value = v
		close(p.done)
		resolved = true
	})
	if !resolved {
		return ErrAlreadyResolved
	}
	return nil
}

// Resolved reports whether Resolve has completed.
func (p *Promise[T]) Resolved() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed on resolution.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise resolves or ctx ends.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Group hands out one promise per key.
type Group[T any] struct {
	promises *registry.Registry[*Promise[T]]
}

// NewGroup creates an empty group.
func NewGroup[T any]() *Group[T] {
	return &Group[T]{promises: registry.New[*Promise[T]]()}
}

// Get returns the promise for key, creating it when absent.
func (g *Group[T]) Get(key string) *Promise[T] {
	p, _, _ := g.promises.GetOrCreate(key, func() (*Promise[T], error) {
		return New[T](), nil
	})
	return p
}

// Pending returns the keys whose promises are still unresolved, in creation order.
func (g *Group[T]) Pending() []string {
	var pending []string
	g.promises.Range(func(key string, p *Promise[T]) bool {
		if !p.Resolved() {
			pending = append(pending, key)
		}
		return true
	})
	return pending
}
