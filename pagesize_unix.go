// SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin || freebsd

package arena

import "golang.org/x/sys/unix"

// hostPageSize returns the host's native page size, used to size the
// minimum arena-growth increment.
func hostPageSize() int {
	return unix.Getpagesize()
}
