// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

// TestDestroyedRoundTrip covers spec scenario 5 and property P9.
func TestDestroyedRoundTrip(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})

	h := tbl.AllocHandleSafe("obj", typeFoo, true)
	require.NotZero(t, h)

	require.True(t, tbl.MarkDestroyed(h))
	require.Nil(t, tbl.GetObject(h))
	require.Equal(t, "obj", tbl.GetObjectIgnoreDestroyed(h, typeFoo))

	require.True(t, tbl.UnmarkDestroyed(h))
	require.Equal(t, "obj", tbl.GetObject(h))
}

func TestMarkDestroyedTwiceFails(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})
	h := tbl.AllocHandleSafe("obj", typeFoo, true)

	require.True(t, tbl.MarkDestroyed(h))
	require.False(t, tbl.MarkDestroyed(h), "marking an already-destroyed handle must fail")
}

func TestUnmarkDestroyedOnLiveHandleSucceeds(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})
	h := tbl.AllocHandleSafe("obj", typeFoo, true)

	// Not destroyed yet, but UnmarkDestroyed validates with
	// ignoreDestroyed = true, so this should still succeed as a no-op
	// clear of an already-clear flag.
	require.True(t, tbl.UnmarkDestroyed(h))
	require.Equal(t, "obj", tbl.GetObject(h))
}

func TestFreeAfterMarkDestroyedCommitsDelete(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})
	h := tbl.AllocHandleSafe("obj", typeFoo, true)

	require.True(t, tbl.MarkDestroyed(h))
	// FreeHandle validates with ignoreDestroyed = true: a destroyed slot
	// is still freeable, committing the two-phase delete.
	require.True(t, tbl.FreeHandleSafe(typeFoo, h))
	require.Nil(t, tbl.GetObjectIgnoreDestroyed(h, typeFoo))
}
