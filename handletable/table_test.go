// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

const (
	typeFoo uint8 = 1
	typeBar uint8 = 2
)

func newTestTable() *Table {
	return New(kprocess.New(1, "test"), Options{})
}

// TestFreshAlloc covers spec scenario 1: empty table, first alloc.
func TestFreshAlloc(t *testing.T) {
	tbl := newTestTable()

	objA := "objA"
	h1 := tbl.AllocHandleSafe(objA, typeFoo, true)
	require.NotZero(t, h1)

	index, generation, instance := Decode(h1)
	require.EqualValues(t, 0, index)
	require.EqualValues(t, MinGeneration, generation)
	require.EqualValues(t, 0, instance)

	require.Equal(t, objA, tbl.GetObject(h1))
	require.EqualValues(t, 1, tbl.UsedEntryCount())
	require.EqualValues(t, DefaultGrowthIncrement-1, tbl.FreeCount())
}

// TestStaleDetection covers spec scenario 2: a freed handle never resolves
// again, even across substantial further churn (P5, P6).
func TestStaleDetection(t *testing.T) {
	tbl := newTestTable()

	h1 := tbl.AllocHandleSafe("objA", typeFoo, true)
	require.NotZero(t, h1)
	require.True(t, tbl.FreeHandleSafe(typeFoo, h1))
	require.Nil(t, tbl.GetObject(h1))

	for i := 0; i < 200; i++ {
		h := tbl.AllocHandleSafe(i, typeFoo, true)
		require.NotZero(t, h)
		require.True(t, tbl.FreeHandleSafe(typeFoo, h))
	}

	require.Nil(t, tbl.GetObject(h1), "freed handle must never resolve again")
}

// TestAssignCollision covers spec scenario 3.
func TestAssignCollision(t *testing.T) {
	tbl := newTestTable()

	var target Handle
	for i := 0; i <= 5; i++ {
		h := tbl.AllocHandleSafe(i, typeFoo, true)
		require.NotZero(t, h)
		if i == 5 {
			target = h
		}
	}

	index, generation, _ := Decode(target)
	require.EqualValues(t, 5, index)

	err := tbl.AssignHandleSafe("collide", typeBar, Encode(5, generation, 0))
	require.ErrorIs(t, err, ErrInvalidParameter)
}

// TestAssignExtend covers spec scenario 4.
func TestAssignExtend(t *testing.T) {
	tbl := newTestTable()

	h := Encode(2000, 2, 0)
	err := tbl.AssignHandleSafe("objA", typeFoo, h)
	require.NoError(t, err)

	require.GreaterOrEqual(t, tbl.Size(), uint32(3024))
	require.Equal(t, "objA", tbl.GetObject(h))

	index, generation, _ := Decode(h)
	require.EqualValues(t, 2000, index)
	require.EqualValues(t, 2, generation)
}

func TestAllocRejectsInvalidType(t *testing.T) {
	// A limit below 255 so that typeLimit+1 still fits a uint8.
	tbl := New(kprocess.New(1, "test"), Options{TypeLimit: 10})
	require.Zero(t, tbl.AllocHandleSafe("x", TypeFree, true))
	require.Zero(t, tbl.AllocHandleSafe("x", uint8(tbl.typeLimit+1), true))
}

func TestAllocMakeValidFalseStartsDestroyed(t *testing.T) {
	tbl := newTestTable()
	h := tbl.AllocHandleSafe("x", typeFoo, false)
	require.NotZero(t, h)
	require.Nil(t, tbl.GetObject(h))
	require.Equal(t, "x", tbl.GetObjectIgnoreDestroyed(h, typeFoo))
}

func TestFreeHandleInvalidIsNoop(t *testing.T) {
	tbl := newTestTable()
	require.False(t, tbl.FreeHandleSafe(typeFoo, Encode(0, 1, 0)))
}

func TestGetObjectTypeMismatch(t *testing.T) {
	tbl := newTestTable()
	h := tbl.AllocHandleSafe("x", typeFoo, true)
	require.Nil(t, tbl.GetObjectByType(h, typeBar))
	require.Equal(t, "x", tbl.GetObjectByType(h, typeFoo))
}

func TestGetObjectTypeReturnsFreeForInvalid(t *testing.T) {
	tbl := newTestTable()
	require.Equal(t, TypeFree, tbl.GetObjectType(Encode(0, 1, 0)))
}
