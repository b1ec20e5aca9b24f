// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// FreeHandle releases h, which must currently name a slot of type typ (or
// pass TypeFree to accept any occupied type). Unlike most validation in this
// package, FreeHandle validates with ignoreDestroyed = true: a handle
// previously marked destroyed (see MarkDestroyed) is still freeable, which is
// what makes mark-then-free a usable two-phase deletion protocol.
//
// If h is invalid, FreeHandle logs and returns false without mutating
// anything. On success it bumps the slot's generation — computed once as
// (old % MaxGeneration) + 1 and stored, never read back after the slot's
// type/destroyed fields are overwritten — appends the slot to the tail of
// the free-list, and returns true.
//
// The caller must hold the exclusive lock; FreeHandleSafe acquires it
// automatically.
func (t *Table) FreeHandle(typ uint8, h Handle) bool {
	index, generation, _ := Decode(h)
	if !t.IsHandleValid(h, true, typ) {
		t.log.Debugw("handletable: FreeHandle: invalid handle", "handle", h, "type", typ)
		return false
	}

	slot := &t.slots[index]
	newGen := (generation % MaxGeneration) + 1

	*slot = freeSlot(newGen)
	t.freeCount++

	if t.freeTail == invalidIndex {
		// Free-list was empty: this slot becomes both head and tail.
		t.freeHead = index
		t.freeTail = index
		slot.prevFree = invalidIndex
		slot.nextFree = invalidIndex
		return true
	}

	t.slots[t.freeTail].nextFree = index
	slot.prevFree = t.freeTail
	slot.nextFree = invalidIndex
	t.freeTail = index

	return true
}

// FreeHandleSafe is FreeHandle performed under the table's exclusive lock.
func (t *Table) FreeHandleSafe(typ uint8, h Handle) bool {
	t.Lock()
	defer t.Unlock()
	return t.FreeHandle(typ, h)
}
