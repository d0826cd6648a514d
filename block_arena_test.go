// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockArena_SatisfiesArenaInterface(t *testing.T) {
	var _ Arena = (*BlockArena)(nil)

	ba := NewBlockArena()
	t.Cleanup(ba.Release)

	ptr := ba.Alloc(64, 8)
	require.NotNil(t, ptr)
	wantLen := int(unitsToBytes(requiredUnits(64)))
	require.Equal(t, wantLen, ba.Len())
	require.Equal(t, wantLen, ba.Peak())

	ba.Reset()
	require.Equal(t, 0, ba.Len())
	require.Equal(t, wantLen, ba.Peak(), "Peak must survive Reset")
}

func TestBlockArena_AllocFailureReturnsNil(t *testing.T) {
	ba := NewBlockArena(WithMaxArenaBytes(int(unitsToBytes(minBlockUnits + 1))))
	t.Cleanup(ba.Release)

	ptr := ba.Alloc(1<<20, 8)
	require.Nil(t, ptr)
}

func TestBlockArena_UnderlyingAllocatorSupportsFree(t *testing.T) {
	ba := NewBlockArena()
	t.Cleanup(ba.Release)

	ptr := ba.Alloc(32, 8)
	require.NotNil(t, ptr)

	require.NoError(t, ba.Allocator().Free(ptr))
	require.Equal(t, 0, ba.Len())
}

func TestBlockArena_WithConcurrentWrapper(t *testing.T) {
	inner := NewBlockArena()
	wrapped := NewConcurrentArena(inner)
	t.Cleanup(wrapped.Release)

	ptr := wrapped.Alloc(48, 8)
	require.NotNil(t, ptr)
	require.Equal(t, int(unitsToBytes(requiredUnits(48))), wrapped.Len())

	wrapped.Reset()
	require.Equal(t, 0, wrapped.Len())
}
