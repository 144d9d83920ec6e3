package skipper

import "unsafe"

// Alloc allocates a new, zero-initialized instance of T from the arena.
// ok is false if the arena's cell capacity has been exhausted; the
// caller must abandon the allocation on that result.
func Alloc[T any](a Allocator) (*T, bool) {
	var zero T
	var (
		size  = unsafe.Sizeof(zero)
		align = unsafe.Alignof(zero)
	)
	if size == 0 {
		size = 1
	}
	ptr, ok := a.Allocate(size, align)
	if !ok {
		return nil, false
	}
	clear(unsafe.Slice((*byte)(ptr), size))
	return (*T)(ptr), true
}
