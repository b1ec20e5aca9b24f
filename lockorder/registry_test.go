// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockorder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAcquireRelease(t *testing.T) {
	r := New(nil)
	require.Equal(t, 0, r.Holders("HANDLETABLE"))

	r.Acquire("HANDLETABLE")
	require.Equal(t, 1, r.Holders("HANDLETABLE"))

	r.Acquire("HANDLETABLE")
	require.Equal(t, 2, r.Holders("HANDLETABLE"))

	r.Release("HANDLETABLE")
	require.Equal(t, 1, r.Holders("HANDLETABLE"))

	r.Release("HANDLETABLE")
	require.Equal(t, 0, r.Holders("HANDLETABLE"))
}

func TestRegistryReleaseWithoutAcquire(t *testing.T) {
	r := New(nil)
	// Must not panic; it's advisory bookkeeping, not an enforcement point.
	require.NotPanics(t, func() { r.Release("HANDLETABLE") })
	require.Equal(t, 0, r.Holders("HANDLETABLE"))
}

func TestRegistryIndependentTags(t *testing.T) {
	r := New(nil)
	r.Acquire("HANDLETABLE")
	r.Acquire("OTHER")
	require.Equal(t, 1, r.Holders("HANDLETABLE"))
	require.Equal(t, 1, r.Holders("OTHER"))
}
