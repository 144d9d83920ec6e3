package skipper

import (
	"cmp"
	"iter"
	"sync"
)

// GuardedMap wraps a SequentialMap with a single mutex, giving the
// baseline thread-safe tier: correct under concurrency, but with no more
// parallelism than a single critical section allows.
type GuardedMap[K cmp.Ordered, V any] struct {
	mu sync.Mutex
	m  *SequentialMap[K, V]
}

// NewGuardedMap constructs an empty guarded map.
func NewGuardedMap[K cmp.Ordered, V any](opts ...Option) *GuardedMap[K, V] {
	return &GuardedMap[K, V]{m: NewSequentialMap[K, V](opts...)}
}

// Find reports the value stored for key, if any.
func (g *GuardedMap[K, V]) Find(key K) (V, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Find(key)
}

// Insert adds key with value if key is not already present.
func (g *GuardedMap[K, V]) Insert(key K, value V) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Insert(key, value)
}

// Erase removes key, reporting whether it was present.
func (g *GuardedMap[K, V]) Erase(key K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Erase(key)
}

// Len returns the number of entries stored.
func (g *GuardedMap[K, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Len()
}

// All returns a snapshot iterator over every key/value pair, taken under
// the guard's lock. The returned sequence does not observe later writes.
func (g *GuardedMap[K, V]) All() iter.Seq2[K, V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	pairs := make([]struct {
		k K
		v V
	}, 0, g.m.Len())
	for k, v := range g.m.All() {
		pairs = append(pairs, struct {
			k K
			v V
		}{k, v})
	}
	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p.k, p.v) {
				return
			}
		}
	}
}

// GuardedSet is a mutex-guarded ordered set built atop GuardedMap.
type GuardedSet[K cmp.Ordered] struct {
	g *GuardedMap[K, struct{}]
}

// NewGuardedSet constructs an empty guarded set.
func NewGuardedSet[K cmp.Ordered](opts ...Option) *GuardedSet[K] {
	return &GuardedSet[K]{g: NewGuardedMap[K, struct{}](opts...)}
}

// Contains reports whether value is a member of the set.
func (s *GuardedSet[K]) Contains(value K) bool {
	_, ok := s.g.Find(value)
	return ok
}

// Insert adds value to the set, reporting whether it was newly added.
func (s *GuardedSet[K]) Insert(value K) bool {
	return s.g.Insert(value, struct{}{})
}

// Erase removes value from the set, reporting whether it was present.
func (s *GuardedSet[K]) Erase(value K) bool {
	return s.g.Erase(value)
}

// Len returns the number of members in the set.
func (s *GuardedSet[K]) Len() int {
	return s.g.Len()
}
