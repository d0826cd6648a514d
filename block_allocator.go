// SPDX-License-Identifier: Apache-2.0

// Package arena implements a boundary-tagged, free-list byte allocator over
// a single simulated sbrk-style arena, alongside the teacher's original
// monotonic (bump) Arena implementation. BlockAllocator is the free-list
// core; Arena, monotonicArena, Pool, Buffer and the slice helpers are the
// ambient allocation-facade layer built on top of either.
package arena

import "unsafe"

// allocatorStats tracks allocator activity for diagnostics and for the
// Arena-facade's Len/Cap/Peak.
type allocatorStats struct {
	bytesAllocated int64
	peakBytes      int64
	growCalls      int
	splitCount     int
	coalesceCount  int
}

// BlockAllocator is a single-threaded, boundary-tagged free-list allocator
// over one growable arena. It is not safe for concurrent use; wrap it in
// NewConcurrentArena (via BlockArena) if multiple goroutines need access.
type BlockAllocator struct {
	p *provider

	anchor  block // the leading sentinel's block, or the free block holding the list's most-recently-touched entry
	trailer block // the current trailing one-unit sentinel

	initialized bool
	policy      Policy

	maxArenaBytes int
	pageSize      int

	stats allocatorStats
}

// NewBlockAllocator constructs a BlockAllocator. The arena is not reserved
// until the first Init, Malloc, or Realloc call.
func NewBlockAllocator(opts ...Option) *BlockAllocator {
	a := &BlockAllocator{
		policy:        FirstFit,
		maxArenaBytes: defaultMaxArenaBytes,
		pageSize:      hostPageSize(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.p = newProvider(a.maxArenaBytes)
	return a
}

func (a *BlockAllocator) v() view {
	return view{buf: a.p.bytes()}
}

// Init establishes the arena and installs sentinels, but only if the
// allocator has not already been initialized (spec.md 5).
func (a *BlockAllocator) Init() {
	if a.initialized {
		return
	}
	a.p.init()
	a.bootstrap()
}

// Reset rewinds the arena to its bootstrap footprint and reinstalls
// sentinels. Equivalent to Init if the allocator was never initialized.
func (a *BlockAllocator) Reset() {
	if !a.initialized {
		a.Init()
		return
	}
	a.p.resetBrk()
	a.bootstrap()
	peak := a.stats.peakBytes
	a.stats = allocatorStats{peakBytes: peak}
}

// Deinit releases the underlying arena and clears allocator state.
// Subsequent operations re-bootstrap on first use.
func (a *BlockAllocator) Deinit() {
	a.p.deinit()
	a.initialized = false
	a.anchor = 0
	a.trailer = 0
	a.stats = allocatorStats{}
}

func (a *BlockAllocator) ensureInit() {
	if !a.initialized {
		a.Init()
	}
}

// bootstrap installs the leading 4-unit sentinel (doubling as the
// free-list anchor) and the trailing 1-unit sentinel, per spec.md 4.2.
func (a *BlockAllocator) bootstrap() {
	if _, ok := a.p.sbrk(int(unitsToBytes(minBlockUnits + 1))); !ok {
		panic("arena: bootstrap sbrk failed on a fresh reservation")
	}

	v := a.v()
	lead := block(0)
	v.setBoth(lead, minBlockUnits, true)
	v.setPrevFree(lead, lead)
	v.setNextFree(lead, lead)

	trail := lead + minBlockUnits
	v.setTag(trail, 1, true)

	a.anchor = lead
	a.trailer = trail
	a.initialized = true
}

// pageUnits returns at least one host page's worth of HF units.
func (a *BlockAllocator) pageUnits() int64 {
	return bytesToUnits(a.pageSize)
}

// grow extends the arena by at least minUnits HF units (rounded up to a
// whole page of units), installs a fresh trailing sentinel, and folds the
// new free span into the free list via the release/coalesce path, per
// spec.md 4.3.
func (a *BlockAllocator) grow(minUnits int64) error {
	units := minUnits
	if page := a.pageUnits(); units < page {
		units = page
	}

	// The old trailing sentinel's unit is already committed and becomes
	// the new free block's header in place, so only `units` additional
	// units need committing: units-1 to extend the free block plus one
	// for the fresh trailing sentinel.
	if _, ok := a.p.sbrk(int(unitsToBytes(units))); !ok {
		return ErrOutOfMemory
	}

	v := a.v()
	oldTrailer := a.trailer
	v.setBoth(oldTrailer, units, false)

	newTrailer := oldTrailer + block(units)
	v.setTag(newTrailer, 1, true)
	a.trailer = newTrailer

	a.stats.growCalls++
	a.release(oldTrailer)
	return nil
}

// requiredUnits converts a byte request into the HF-unit count placement
// must find, per spec.md 4.8.
func requiredUnits(n int) int64 {
	r := bytesToUnits(n) + 2
	if r < minBlockUnits {
		r = minBlockUnits
	}
	return r
}

// Malloc allocates n bytes and returns a pointer to the payload. A request
// of 0 bytes still yields a minimum-size block, which round-trips cleanly
// through Free.
func (a *BlockAllocator) Malloc(n int) (unsafe.Pointer, error) {
	a.ensureInit()
	if n < 0 {
		n = 0
	}

	r := requiredUnits(n)

	var b block
	var err error
	switch a.policy {
	case BestFit:
		b, err = a.bestFit(r)
	default:
		b, err = a.firstFit(r)
	}
	if err != nil {
		return nil, err
	}

	if a.v().size(b) >= r+minBlockUnits {
		a.stats.splitCount++
	}
	b = a.placeInto(b, r)

	allocBytes := unitsToBytes(a.v().size(b))
	a.stats.bytesAllocated += allocBytes
	if a.stats.bytesAllocated > a.stats.peakBytes {
		a.stats.peakBytes = a.stats.bytesAllocated
	}

	return a.v().payloadPtr(b), nil
}

// Free releases the block identified by p. A nil pointer is a no-op. A
// pointer that does not identify a currently allocated block (including
// one already freed) returns ErrBadAddress without modifying the arena.
func (a *BlockAllocator) Free(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}
	if !a.initialized {
		return ErrBadAddress
	}

	b, err := a.identify(p)
	if err != nil {
		return err
	}

	a.stats.bytesAllocated -= unitsToBytes(a.v().size(b))
	a.stats.coalesceCount++
	a.release(b)
	return nil
}

// Realloc resizes the block identified by p to n bytes, returning a
// (possibly new) pointer to the payload. A nil p behaves like Malloc(n). If
// the existing block already satisfies n, the same pointer is returned
// (no shrink-in-place). Otherwise a new block is allocated, the lesser of
// the old and new payload sizes is copied, and the old block is released.
// On failure the original block is left untouched.
func (a *BlockAllocator) Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	if p == nil {
		return a.Malloc(n)
	}
	if !a.initialized {
		return nil, ErrBadAddress
	}

	b, err := a.identify(p)
	if err != nil {
		return nil, err
	}

	v := a.v()
	r := requiredUnits(n)
	oldSize := v.size(b)
	if oldSize >= r {
		return p, nil
	}

	newPtr, err := a.Malloc(n)
	if err != nil {
		return nil, err
	}

	oldPayloadBytes := int(unitsToBytes(oldSize - 2))
	if n < 0 {
		n = 0
	}
	copyBytes := oldPayloadBytes
	if n < copyBytes {
		copyBytes = n
	}
	if copyBytes > 0 {
		copy(unsafe.Slice((*byte)(newPtr), copyBytes), unsafe.Slice((*byte)(p), copyBytes))
	}

	a.stats.bytesAllocated -= unitsToBytes(oldSize)
	a.release(b)
	return newPtr, nil
}
