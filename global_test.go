// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobal_MallocFreeRoundTrip(t *testing.T) {
	defer Deinit()

	p, err := Malloc(32)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NoError(t, Free(p))
}

func TestGlobal_ReinitAfterDeinit(t *testing.T) {
	defer Deinit()

	Init()
	p, err := Malloc(16)
	require.NoError(t, err)
	require.NotNil(t, p)

	Deinit()

	p2, err := Realloc(nil, 16)
	require.NoError(t, err)
	require.NotNil(t, p2)
}

func TestGlobal_ResetClearsAccounting(t *testing.T) {
	defer Deinit()

	Init()
	_, err := Malloc(64)
	require.NoError(t, err)

	Reset()
	require.Equal(t, int64(0), global().stats.bytesAllocated)
}
