// SPDX-License-Identifier: Apache-2.0

package arena

// insertFree splices b into the circular doubly-linked free list
// immediately after the anchor, then moves the anchor to b (LIFO
// discipline, as spec.md 4.4 prescribes).
func (a *BlockAllocator) insertFree(b block) {
	v := a.v()
	anchor := a.anchor
	after := v.nextFree(anchor)
	v.setPrevFree(b, anchor)
	v.setNextFree(b, after)
	v.setPrevFree(after, b)
	v.setNextFree(anchor, b)
	a.anchor = b
}

// unlinkFree splices b out of the free list. If b was the anchor, the
// anchor moves to b's predecessor, which is valid immediately after the
// splice since that predecessor's next now points past b.
func (a *BlockAllocator) unlinkFree(b block) {
	v := a.v()
	before := v.prevFree(b)
	after := v.nextFree(b)
	v.setNextFree(before, after)
	v.setPrevFree(after, before)
	if a.anchor == b {
		a.anchor = before
	}
}
