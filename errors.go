// SPDX-License-Identifier: Apache-2.0

package arena

import "errors"

var (
	// ErrOutOfMemory is returned when the free list cannot satisfy a request
	// and the underlying arena provider refuses to grow further.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrBadAddress is returned when a pointer passed to Free or Realloc
	// does not identify a currently allocated block. This also covers
	// double-free: once a block's allocated bit is cleared, identify()
	// no longer recognizes it.
	ErrBadAddress = errors.New("arena: bad address")
)
