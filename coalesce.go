// SPDX-License-Identifier: Apache-2.0

package arena

// release marks b free and merges it with whichever physical neighbors are
// themselves free, leaving the anchor pointed at the final coalesced
// block. The lower merge happens first, then the upper merge, so that at
// most one new free-list entry is ever created (spec.md 4.6).
func (a *BlockAllocator) release(b block) {
	v := a.v()
	size := v.size(b)
	v.setBoth(b, size, false)

	if prev := v.prevNeighbor(b); !v.allocated(prev) {
		prevSize := v.size(prev)
		newSize := prevSize + size
		v.setBoth(prev, newSize, false)
		b = prev
		size = newSize
		// prev was already a free-list member; linkage is unchanged.
	} else {
		a.insertFree(b)
	}

	if next := v.nextNeighbor(b); !v.allocated(next) {
		a.unlinkFree(next)
		newSize := size + v.size(next)
		v.setBoth(b, newSize, false)
		size = newSize
	}

	a.anchor = b
}
