// SPDX-License-Identifier: Apache-2.0

package arena

import "unsafe"

// BlockArena adapts a BlockAllocator to the Arena interface so that
// arena-style callers (Buffer, Pool, AllocateSlice/SliceAppend) can draw
// memory from the free-list allocator. Unlike monotonicArena, a BlockArena
// supports individual Free/Realloc through its underlying *BlockAllocator.
// Callers that only need bump-and-reset semantics can keep using
// NewMonotonicArena instead.
type BlockArena struct {
	alloc *BlockAllocator
}

// NewBlockArena creates an Arena backed by a free-list BlockAllocator.
func NewBlockArena(opts ...Option) *BlockArena {
	return &BlockArena{alloc: NewBlockAllocator(opts...)}
}

// Allocator exposes the underlying BlockAllocator for callers that want
// the full Malloc/Free/Realloc surface rather than the bump-style Arena
// facade.
func (b *BlockArena) Allocator() *BlockAllocator {
	return b.alloc
}

// Alloc satisfies the Arena interface. The alignment parameter is ignored:
// every payload starts a whole number of hfUnitSize (24-byte) units past the
// arena base, so returned pointers are 8-byte aligned, and a request for a
// coarser alignment is not honored.
func (b *BlockArena) Alloc(size, _ uintptr) unsafe.Pointer {
	p, err := b.alloc.Malloc(int(size))
	if err != nil {
		return nil
	}
	return p
}

// Reset satisfies the Arena interface by rewinding to the bootstrap
// footprint; every pointer previously returned by Alloc becomes invalid.
func (b *BlockArena) Reset() {
	b.alloc.Reset()
}

// Release satisfies the Arena interface by releasing the underlying
// arena entirely.
func (b *BlockArena) Release() {
	b.alloc.Deinit()
}

// Len returns the number of bytes currently allocated (not yet freed).
func (b *BlockArena) Len() int {
	return int(b.alloc.stats.bytesAllocated)
}

// Cap returns the total bytes currently committed to the arena.
func (b *BlockArena) Cap() int {
	return b.alloc.p.brk
}

// Peak returns the high-water mark of bytes allocated at once.
func (b *BlockArena) Peak() int {
	return int(b.alloc.stats.peakBytes)
}
