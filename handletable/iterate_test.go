// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

// TestIteration covers spec scenario 6: 5 slots populated with frees
// interleaved, iteration observes exactly those 5 (index, type, object)
// triples in ascending order and then terminates.
func TestIteration(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})

	// Populate 7 slots, free 2 of them (indices 1 and 4), leaving 5
	// occupied slots at indices 0, 2, 3, 5, 6.
	handles := make([]Handle, 7)
	for i := range handles {
		handles[i] = tbl.AllocHandleSafe(i, typeFoo, true)
		require.NotZero(t, handles[i])
	}
	require.True(t, tbl.FreeHandleSafe(typeFoo, handles[1]))
	require.True(t, tbl.FreeHandleSafe(typeFoo, handles[4]))

	tbl.RLock()
	defer tbl.RUnlock()

	var (
		cursor  uint32
		typ     uint8
		handle  Handle
		obj     Object
		got     []int
		gotIdx  []uint32
		wantIdx = []uint32{0, 2, 3, 5, 6}
	)
	for tbl.NextEntry(&cursor, &typ, &handle, &obj) {
		require.Equal(t, typeFoo, typ)
		index, _, _ := Decode(handle)
		gotIdx = append(gotIdx, index)
		got = append(got, obj.(int))
	}

	require.Equal(t, wantIdx, gotIdx)
	require.Equal(t, []int{0, 2, 3, 5, 6}, got)

	// Iteration must terminate: one more call returns false.
	require.False(t, tbl.NextEntry(&cursor, &typ, &handle, &obj))
}

func TestBuildEntryHandle(t *testing.T) {
	tbl := New(kprocess.New(1, "test"), Options{})
	h := tbl.AllocHandleSafe("obj", typeFoo, true)

	index, _, _ := Decode(h)
	require.Equal(t, h, tbl.BuildEntryHandle(index))
	require.Equal(t, "obj", tbl.GetEntryObject(index))
	require.Equal(t, typeFoo, tbl.GetEntryType(index))
}
