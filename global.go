// SPDX-License-Identifier: Apache-2.0

package arena

import "unsafe"

// defaultAllocator is the process-wide allocator the package-level
// lifecycle and allocation functions operate on, matching spec.md 5's
// description of process-level entry points that "route lifecycle events
// to the arena provider and reset the core's internal anchor." It is
// lazily constructed on first use by any of the functions below.
var defaultAllocator *BlockAllocator

func global() *BlockAllocator {
	if defaultAllocator == nil {
		defaultAllocator = NewBlockAllocator()
	}
	return defaultAllocator
}

// Init establishes the process-wide arena if it has not been already.
func Init() {
	global().Init()
}

// Reset rewinds the process-wide arena to its bootstrap footprint.
func Reset() {
	global().Reset()
}

// Deinit releases the process-wide arena. A later call to Init, Malloc, or
// Realloc re-bootstraps it.
func Deinit() {
	global().Deinit()
}

// Malloc allocates n bytes from the process-wide arena.
func Malloc(n int) (unsafe.Pointer, error) {
	return global().Malloc(n)
}

// Free releases a block previously returned by Malloc or Realloc on the
// process-wide arena.
func Free(p unsafe.Pointer) error {
	return global().Free(p)
}

// Realloc resizes a block previously returned by Malloc or Realloc on the
// process-wide arena.
func Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	return global().Realloc(p, n)
}
