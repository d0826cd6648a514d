// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_AcquireRelease_Monotonic(t *testing.T) {
	p := NewArenaPool()

	item := p.Acquire(1)
	require.NotNil(t, item.Arena)

	ptr := item.Arena.Alloc(64, 8)
	require.NotNil(t, ptr)
	require.Equal(t, 64, item.Arena.Len())

	p.Release(item)

	again := p.Acquire(1)
	require.Same(t, item, again)
	require.Equal(t, 0, again.Arena.Len())
}

func TestPool_AcquireRelease_BlockArena(t *testing.T) {
	p := NewBlockArenaPool()

	item := p.Acquire(7)
	require.NotNil(t, item.Arena)

	ptr := item.Arena.Alloc(96, 8)
	require.NotNil(t, ptr)
	require.Greater(t, item.Arena.Len(), 0)

	ba, ok := item.Arena.(*BlockArena)
	require.True(t, ok)
	require.NotNil(t, ba.Allocator())

	p.Release(item)

	reused := p.Acquire(7)
	require.Same(t, item, reused)
	require.Equal(t, 0, reused.Arena.Len())
}

func TestPool_ReleaseMany_TracksSizes(t *testing.T) {
	p := NewArenaPool()

	items := []*PoolItem{p.Acquire(3), p.Acquire(3)}
	for _, it := range items {
		it.Arena.Alloc(128, 8)
	}

	p.ReleaseMany(items)

	next := p.Acquire(3)
	require.NotNil(t, next)
	require.Equal(t, 0, next.Arena.Len())
}
