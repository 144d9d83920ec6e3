package skipper

import (
	"cmp"
	"sync/atomic"
)

// lockFreeNode is an arena-allocated, CAS-linked tower. The node struct
// itself comes from the arena so its address is stable for the lifetime
// of the set (no reclamation, no ABA-prone reuse); the variable-length
// forward slice is an ordinary Go-heap slice kept alive by the node,
// which sidesteps needing raw-layout arena allocation for a
// variable-length array under generics while still giving every CAS
// target (the node pointer) a stable address.
type lockFreeNode[K cmp.Ordered] struct {
	value    K
	level    int
	forward  []atomic.Pointer[lockFreeNode[K]]
	isErased atomic.Bool
}

func newLockFreeNode[K cmp.Ordered](a *Arena, value K, level int) (*lockFreeNode[K], bool) {
	n, ok := Alloc[lockFreeNode[K]](a)
	if !ok {
		return nil, false
	}
	n.value = value
	n.level = level
	n.forward = make([]atomic.Pointer[lockFreeNode[K]], level)
	return n, true
}

// LockFreeSet is the arena-backed, CAS-driven ordered set. It supports
// Contains and Insert; there is no lock-free Erase in this tier.
type LockFreeSet[K cmp.Ordered] struct {
	arena          *Arena
	head, tail     *lockFreeNode[K]
	maxLevel       int
	probability    float64
	exhaustedCount atomic.Int64
}

// NewLockFreeSet constructs an empty lock-free set backed by arena. The
// sentinels are plain Go-heap structures, not arena allocations — they
// are container-lifetime fixtures, not nodes that come and go with
// Insert, analogous to head in the other tiers.
func NewLockFreeSet[K cmp.Ordered](arena *Arena, opts ...Option) *LockFreeSet[K] {
	c := newConfig(opts)
	tail := &lockFreeNode[K]{level: c.maxLevel}

	head := &lockFreeNode[K]{level: c.maxLevel, forward: make([]atomic.Pointer[lockFreeNode[K]], c.maxLevel)}
	for i := range head.forward {
		head.forward[i].Store(tail)
	}

	return &LockFreeSet[K]{
		arena:       arena,
		head:        head,
		tail:        tail,
		maxLevel:    c.maxLevel,
		probability: c.probability,
	}
}

// find performs the lock-free top-down scan, opportunistically unlinking
// any logically-erased nodes it passes through via CAS. found reports
// whether value is present (linked and not erased) once the scan
// completes.
func (s *LockFreeSet[K]) find(value K) (found bool, predecessors, successors []*lockFreeNode[K]) {
	predecessors = make([]*lockFreeNode[K], s.maxLevel)
	successors = make([]*lockFreeNode[K], s.maxLevel)

restart:
	pred := s.head
	for level := s.maxLevel - 1; level >= 0; level-- {
		curr := pred.forward[level].Load()
		for curr != s.tail {
			succ := curr.forward[level].Load()
			if curr.isErased.Load() {
				if !pred.forward[level].CompareAndSwap(curr, succ) {
					goto restart
				}
				curr = pred.forward[level].Load()
				continue
			}
			if curr.value < value {
				pred = curr
				curr = succ
				continue
			}
			break
		}
		predecessors[level] = pred
		successors[level] = curr
	}

	found = successors[0] != s.tail && !(successors[0].value < value) && !(value < successors[0].value)
	return found, predecessors, successors
}

// Contains reports whether value is present.
func (s *LockFreeSet[K]) Contains(value K) bool {
	found, _, _ := s.find(value)
	return found
}

// Insert adds value to the set, reporting whether it was newly added.
// If the arena is exhausted, Insert returns false and ExhaustedCount is
// incremented so callers can distinguish "already present" from
// "allocator full" without changing this method's bool contract.
func (s *LockFreeSet[K]) Insert(value K) bool {
	height := RandomLevel(s.maxLevel, s.probability) + 1

	for {
		found, predecessors, successors := s.find(value)
		if found {
			return false
		}

		n, ok := newLockFreeNode(s.arena, value, height)
		if !ok {
			s.exhaustedCount.Add(1)
			return false
		}
		for level := 0; level < height; level++ {
			n.forward[level].Store(successors[level])
		}

		if !predecessors[0].forward[0].CompareAndSwap(successors[0], n) {
			continue
		}

		for level := 1; level < height; level++ {
			for {
				if n.isErased.Load() {
					return true
				}
				if predecessors[level].forward[level].CompareAndSwap(successors[level], n) {
					break
				}
				_, predecessors, successors = s.find(value)
			}
		}
		return true
	}
}

// ExhaustedCount returns the number of Insert calls that failed because
// the backing arena ran out of cells, rather than because value was
// already present.
func (s *LockFreeSet[K]) ExhaustedCount() int64 {
	return s.exhaustedCount.Load()
}
