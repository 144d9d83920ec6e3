// core.go holds the tuning constants and the randomized tower-height
// generator shared by every concurrency tier. Each tier owns its own
// node shape and traversal, since the plain, mutex-guarded, lock-coupled,
// and CAS-driven nodes are structurally different enough that a single
// shared generic Find would end up hiding more than it shares.
package skipper

import (
	"cmp"
	"fmt"
	"math/rand/v2"

	"github.com/zeebo/xxh3"
)

const (
	// DefaultMaxLevel bounds the height of a node's forward tower.
	DefaultMaxLevel = 4
	// DefaultProbability is the per-level coin-flip probability used by
	// RandomLevel to decide whether a tower grows another level.
	DefaultProbability = 0.2
)

// RandomLevel draws a tower height in [0, maxLevel) using repeated coin
// flips at the given probability. It uses math/rand/v2's package-level
// generator, which is safe for concurrent use without introducing lock
// contention of its own — important for the lock-coupled and lock-free
// tiers, which call this from many goroutines at once.
func RandomLevel(maxLevel int, probability float64) int {
	level := 0
	for level < maxLevel-1 && rand.Float64() < probability {
		level++
	}
	return level
}

// config holds the construction-time tuning parameters shared by every
// container in this package.
type config struct {
	maxLevel    int
	probability float64
}

// Option configures a container's tuning parameters at construction.
type Option func(*config)

// WithMaxLevel overrides the default tower height bound.
func WithMaxLevel(level int) Option {
	return func(c *config) {
		if level > 0 {
			c.maxLevel = level
		}
	}
}

// WithProbability overrides the default per-level growth probability.
func WithProbability(p float64) Option {
	return func(c *config) {
		if p > 0 && p < 1 {
			c.probability = p
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxLevel: DefaultMaxLevel, probability: DefaultProbability}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// writeOrderedKey feeds key's textual representation, terminated by a
// newline, into an xxh3 hasher. Formatting rather than reinterpreting raw
// bytes keeps this generic over every cmp.Ordered type without unsafe
// casts.
func writeOrderedKey[K cmp.Ordered](h *xxh3.Hasher, key K) {
	fmt.Fprintln(h, key)
}
