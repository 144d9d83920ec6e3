// Command example demonstrates the four concurrency tiers this module
// provides: five key/value pairs in the sequential map, then 100 values
// inserted from 100 goroutines into each concurrent set.
package main

import (
	"fmt"
	"sync"

	"github.com/thebagchi/skipper"
)

func main() {
	sequentialDemo()
	guardedDemo()
	concurrentDemo()
	lockFreeDemo()
}

func sequentialDemo() {
	m := skipper.NewSequentialMap[int, string]()
	for i := 0; i < 5; i++ {
		m.Insert(i, fmt.Sprintf("value-%d", i))
	}
	fmt.Println("sequential:")
	for k, v := range m.All() {
		fmt.Printf("  %d -> %s\n", k, v)
	}
}

func guardedDemo() {
	g := skipper.NewGuardedSet[int]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			g.Insert(v)
		}(i)
	}
	wg.Wait()
	fmt.Printf("guarded: inserted %d values from 100 goroutines\n", g.Len())
}

func concurrentDemo() {
	c := skipper.NewConcurrentSet[int]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Insert(v)
		}(i)
	}
	wg.Wait()
	fmt.Printf("lock-coupled: %d members, contains(42)=%v\n", func() int {
		n := 0
		for i := 0; i < 100; i++ {
			if c.Contains(i) {
				n++
			}
		}
		return n
	}(), c.Contains(42))
}

func lockFreeDemo() {
	arena := skipper.NewArena(1 << 16)
	defer arena.Delete()

	s := skipper.NewLockFreeSet[int](arena)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Insert(v)
		}(i)
	}
	wg.Wait()
	fmt.Printf("lock-free: contains(7)=%v, exhausted=%d\n", s.Contains(7), s.ExhaustedCount())
}
