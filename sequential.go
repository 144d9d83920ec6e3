package skipper

import (
	"cmp"
	"iter"

	"github.com/zeebo/xxh3"
)

// sequentialNode is the plain, GC-managed node used by the single-owner
// tier. No locking, no atomics — callers are responsible for excluding
// concurrent access entirely.
type sequentialNode[K cmp.Ordered, V any] struct {
	key     K
	value   V
	forward []*sequentialNode[K, V]
}

// SequentialMap is the single-owner, unsynchronized ordered map. It is
// the oracle tier: the simplest possible correct implementation, used to
// validate the behavior of the guarded, lock-coupled, and lock-free
// tiers against.
type SequentialMap[K cmp.Ordered, V any] struct {
	head        *sequentialNode[K, V]
	level       int
	maxLevel    int
	probability float64
	size        int
}

// NewSequentialMap constructs an empty map.
func NewSequentialMap[K cmp.Ordered, V any](opts ...Option) *SequentialMap[K, V] {
	c := newConfig(opts)
	return &SequentialMap[K, V]{
		head:        &sequentialNode[K, V]{forward: make([]*sequentialNode[K, V], c.maxLevel)},
		maxLevel:    c.maxLevel,
		probability: c.probability,
	}
}

// find returns the node matching key (or nil) along with the per-level
// predecessor array required to splice a new node in or unlink one.
func (m *SequentialMap[K, V]) find(key K) (*sequentialNode[K, V], []*sequentialNode[K, V]) {
	update := make([]*sequentialNode[K, V], m.maxLevel)
	x := m.head
	for i := m.level - 1; i >= 0; i-- {
		for x.forward[i] != nil && x.forward[i].key < key {
			x = x.forward[i]
		}
		update[i] = x
	}
	for i := m.level; i < m.maxLevel; i++ {
		update[i] = m.head
	}
	x = x.forward[0]
	if x != nil && !(x.key < key) && !(key < x.key) {
		return x, update
	}
	return nil, update
}

// insertAt splices a fresh node for key into the tower described by
// update, growing the map's level if the new tower is taller than any
// existing one. Shared by Insert and Value.
func (m *SequentialMap[K, V]) insertAt(key K, update []*sequentialNode[K, V]) *sequentialNode[K, V] {
	level := RandomLevel(m.maxLevel, m.probability) + 1
	if level > m.level {
		for i := m.level; i < level; i++ {
			update[i] = m.head
		}
		m.level = level
	}

	n := &sequentialNode[K, V]{key: key, forward: make([]*sequentialNode[K, V], level)}
	for i := 0; i < level; i++ {
		n.forward[i] = update[i].forward[i]
		update[i].forward[i] = n
	}
	m.size++
	return n
}

// Find reports the value stored for key, if any.
func (m *SequentialMap[K, V]) Find(key K) (V, bool) {
	if n, _ := m.find(key); n != nil {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Insert adds key with value if key is not already present. It reports
// whether the key was newly inserted.
func (m *SequentialMap[K, V]) Insert(key K, value V) bool {
	n, update := m.find(key)
	if n != nil {
		return false
	}
	m.insertAt(key, update).value = value
	return true
}

// Erase removes key, reporting whether it was present.
func (m *SequentialMap[K, V]) Erase(key K) bool {
	x := m.head
	update := make([]*sequentialNode[K, V], m.maxLevel)
	for i := m.level - 1; i >= 0; i-- {
		for x.forward[i] != nil && x.forward[i].key < key {
			x = x.forward[i]
		}
		update[i] = x
	}
	x = x.forward[0]
	if x == nil || (x.key < key) || (key < x.key) {
		return false
	}
	for i := 0; i < m.level; i++ {
		if update[i].forward[i] != x {
			continue
		}
		update[i].forward[i] = x.forward[i]
	}
	for m.level > 0 && m.head.forward[m.level-1] == nil {
		m.level--
	}
	m.size--
	return true
}

// Value returns a pointer to the stored value for key, inserting a zero
// value first if key is absent. This is the mutating operator[]
// equivalent.
func (m *SequentialMap[K, V]) Value(key K) *V {
	n, update := m.find(key)
	if n == nil {
		n = m.insertAt(key, update)
	}
	return &n.value
}

// MustValue returns the value for key, or ErrInvalidKey if absent. This
// is the const operator[] equivalent: it never inserts.
func (m *SequentialMap[K, V]) MustValue(key K) (V, error) {
	if n, _ := m.find(key); n != nil {
		return n.value, nil
	}
	var zero V
	return zero, ErrInvalidKey
}

// Len returns the number of entries stored.
func (m *SequentialMap[K, V]) Len() int {
	return m.size
}

// Iterator walks a SequentialMap in ascending key order. The zero value
// is not usable; obtain one from Begin.
type Iterator[K cmp.Ordered, V any] struct {
	node *sequentialNode[K, V]
}

// Begin returns an iterator positioned at the smallest key.
func (m *SequentialMap[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{node: m.head.forward[0]}
}

// End returns the sentinel "past the last element" iterator.
func (m *SequentialMap[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{node: nil}
}

// Next advances the iterator to the following element.
func (it *Iterator[K, V]) Next() {
	it.node = it.node.forward[0]
}

// Key returns the key at the iterator's current position.
func (it *Iterator[K, V]) Key() K {
	return it.node.key
}

// Value returns the value at the iterator's current position.
func (it *Iterator[K, V]) Value() V {
	return it.node.value
}

// Equal reports whether two iterators reference the same position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.node == other.node
}

// All returns an iterator over every key/value pair in ascending order.
func (m *SequentialMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for x := m.head.forward[0]; x != nil; x = x.forward[0] {
			if !yield(x.key, x.value) {
				return
			}
		}
	}
}

// Keys returns an iterator over every key in ascending order.
func (m *SequentialMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for x := m.head.forward[0]; x != nil; x = x.forward[0] {
			if !yield(x.key) {
				return
			}
		}
	}
}

// Values returns an iterator over every value in key-ascending order.
func (m *SequentialMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for x := m.head.forward[0]; x != nil; x = x.forward[0] {
			if !yield(x.value) {
				return
			}
		}
	}
}

// Checksum hashes the ascending key sequence with xxh3, producing a
// fingerprint suitable for comparing the contents of two maps without
// comparing every value. Values do not contribute to the hash.
func (m *SequentialMap[K, V]) Checksum() uint64 {
	h := xxh3.New()
	for x := m.head.forward[0]; x != nil; x = x.forward[0] {
		writeOrderedKey(h, x.key)
	}
	return h.Sum64()
}

// SequentialSet is a single-owner ordered set built atop SequentialMap.
type SequentialSet[K cmp.Ordered] struct {
	m *SequentialMap[K, struct{}]
}

// NewSequentialSet constructs an empty set.
func NewSequentialSet[K cmp.Ordered](opts ...Option) *SequentialSet[K] {
	return &SequentialSet[K]{m: NewSequentialMap[K, struct{}](opts...)}
}

// Contains reports whether value is a member of the set.
func (s *SequentialSet[K]) Contains(value K) bool {
	_, ok := s.m.Find(value)
	return ok
}

// Insert adds value to the set, reporting whether it was newly added.
func (s *SequentialSet[K]) Insert(value K) bool {
	return s.m.Insert(value, struct{}{})
}

// Erase removes value from the set, reporting whether it was present.
func (s *SequentialSet[K]) Erase(value K) bool {
	return s.m.Erase(value)
}

// Len returns the number of members in the set.
func (s *SequentialSet[K]) Len() int {
	return s.m.Len()
}

// All returns an iterator over every member in ascending order.
func (s *SequentialSet[K]) All() iter.Seq[K] {
	return s.m.Keys()
}
