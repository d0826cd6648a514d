// SPDX-License-Identifier: Apache-2.0

package arena

// Policy selects the free-list search strategy used to satisfy a request.
type Policy int

const (
	// FirstFit returns the first free block encountered that is large
	// enough. This is the default, per spec.md's design notes.
	FirstFit Policy = iota
	// BestFit walks the whole free list and returns the smallest block
	// that still satisfies the request, ties broken by first encountered.
	BestFit
)

// String renders the policy name, primarily for diagnostics in tests.
func (p Policy) String() string {
	switch p {
	case BestFit:
		return "best_fit"
	default:
		return "first_fit"
	}
}

// firstFit walks the free list starting at the anchor and returns the
// first block with size >= r. It grows the arena and restarts the walk
// when the list has been fully traversed without success.
func (a *BlockAllocator) firstFit(r int64) (block, error) {
	v := a.v()
	cur := a.anchor
	for {
		if !v.allocated(cur) && v.size(cur) >= r {
			return cur, nil
		}
		next := v.nextFree(cur)
		if next == a.anchor {
			if err := a.grow(r); err != nil {
				return noBlock, err
			}
			cur = a.anchor
			continue
		}
		cur = next
	}
}

// bestFit walks the entire free list, tracking the smallest block that
// still satisfies r. The search does not seed its candidate with the
// anchor, since the anchor can be the permanently allocated leading
// sentinel, which must never be chosen. It instead accepts the first
// fitting block unconditionally
// and only replaces it with a strictly smaller one thereafter.
func (a *BlockAllocator) bestFit(r int64) (block, error) {
	v := a.v()
	for {
		var best block
		found := false
		cur := a.anchor
		for {
			if !v.allocated(cur) && v.size(cur) >= r {
				if !found || v.size(cur) < v.size(best) {
					best = cur
					found = true
				}
			}
			next := v.nextFree(cur)
			if next == a.anchor {
				break
			}
			cur = next
		}
		if found {
			return best, nil
		}
		if err := a.grow(r); err != nil {
			return noBlock, err
		}
	}
}

// placeInto consumes block b to satisfy a request of r units, splitting
// off the upper, high-address end when the remainder would still be a
// legal block, and returns the block now carrying the allocation.
func (a *BlockAllocator) placeInto(b block, r int64) block {
	v := a.v()
	size := v.size(b)

	if size >= r+minBlockUnits {
		remainder := size - r
		// Remainder keeps b's free-list linkage untouched; only its
		// tags move. The allocated piece is carved from the high end.
		v.setBoth(b, remainder, false)
		alloc := b + block(remainder)
		v.setBoth(alloc, r, true)
		return alloc
	}

	a.unlinkFree(b)
	v.setBoth(b, size, true)
	return b
}
