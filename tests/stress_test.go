package skipper_test

import (
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/thebagchi/skipper"
	"golang.org/x/sync/errgroup"
)

// TestStressTiersAgreeWithOracle drives the same disjoint workload
// through the sequential oracle and every concurrent tier, then checks
// every key in a roaring.Bitmap of the keys the workers inserted against
// each tier's Contains. This catches lost updates in every tier; extra
// members are caught only for the guarded tier, through its Len.
func TestStressTiersAgreeWithOracle(t *testing.T) {
	const workers = 24
	const perWorker = 500

	expected := roaring.New()
	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			expected.Add(uint32(w*perWorker + i))
		}
	}

	oracle := skipper.NewSequentialSet[int]()
	for it := expected.Iterator(); it.HasNext(); {
		oracle.Insert(int(it.Next()))
	}

	guarded := skipper.NewGuardedSet[int]()
	coupled := skipper.NewConcurrentSet[int]()
	arena := skipper.NewArena(1 << 20)
	defer arena.Delete()
	lockfree := skipper.NewLockFreeSet[int](arena)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				key := w*perWorker + i
				guarded.Insert(key)
				coupled.Insert(key)
				lockfree.Insert(key)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup returned error: %v", err)
	}

	if guarded.Len() != int(expected.GetCardinality()) {
		t.Fatalf("guarded.Len() = %d; want %d", guarded.Len(), expected.GetCardinality())
	}

	for it := expected.Iterator(); it.HasNext(); {
		key := int(it.Next())
		if !guarded.Contains(key) {
			t.Fatalf("guarded missing key %d", key)
		}
		if !coupled.Contains(key) {
			t.Fatalf("lock-coupled missing key %d", key)
		}
		if !lockfree.Contains(key) {
			t.Fatalf("lock-free missing key %d", key)
		}
		if !oracle.Contains(key) {
			t.Fatalf("oracle missing key %d", key)
		}
	}
}
