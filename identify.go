// SPDX-License-Identifier: Apache-2.0

package arena

import "unsafe"

// identify accepts an arbitrary caller pointer and returns the header block
// of the enclosing allocated block, or ErrBadAddress.
//
// The fast path only fires when p is aligned to hfUnitSize from the arena
// base (the natural alignment of a header), and still double-checks
// header/footer agreement before trusting it. Anything else falls back to
// a linear walk from the leading sentinel, which also accepts interior
// pointers into a larger allocated block (a caller that offset its own
// payload pointer).
func (a *BlockAllocator) identify(p unsafe.Pointer) (block, error) {
	lo := a.p.heapLo()
	hi := a.p.heapHi()
	if p == nil || lo == nil || uintptr(p) <= uintptr(lo) || uintptr(p) >= uintptr(hi) {
		return noBlock, ErrBadAddress
	}

	v := a.v()
	base := a.p.base()
	byteOff := int64(uintptr(p) - base)

	if byteOff%hfUnitSize == 0 {
		c := v.headerFromAlignedPayload(byteOff)
		if c >= 0 && v.allocated(c) {
			size := v.size(c)
			if size >= minBlockUnits {
				footer := footerOf(c, size)
				if v.size(footer) == size && v.allocated(footer) == v.allocated(c) {
					return c, nil
				}
			}
		}
	}

	cur := block(0)
	for {
		next := v.nextNeighbor(cur)
		nextAddr := base + uintptr(next)*hfUnitSize
		if nextAddr > uintptr(p) {
			break
		}
		cur = next
	}
	if v.allocated(cur) {
		return cur, nil
	}
	return noBlock, ErrBadAddress
}
