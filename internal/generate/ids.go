package generate

import "sync/atomic"

// Allocator hands out unique, monotonically increasing identifiers. The zero
// value is ready to use and starts at 0. It is safe for concurrent use.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator returns an [Allocator] whose first identifier is start.
func NewAllocator(start uint64) *Allocator {
	a := &Allocator{}
	a.next.Store(start)
	return a
}

// Next returns the next identifier.
func (a *Allocator) Next() uint64 {
	return a.next.Add(1) - 1
}
