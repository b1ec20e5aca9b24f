// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// AssignHandle adopts a caller-supplied handle h, chosen by another
// authority (for instance a peer driver that has already picked the handle
// value), binding it to obj with type typ. Unlike AllocHandle, the table
// does not choose the generation: it is taken verbatim from h, so subsequent
// lookups of h resolve correctly. The collision risk (two authorities
// picking the same handle) is borne by whoever chose h; AssignHandle simply
// refuses if the target slot isn't free. A handle whose generation field is 0
// is refused with ErrInvalidParameter.
//
// AssignHandle grows the table if h's index lies beyond the current
// capacity, to at least index + growthIncrement slots capped at MaxSize. The caller must hold the exclusive lock; AssignHandleSafe
// acquires it automatically.
func (t *Table) AssignHandle(obj Object, typ uint8, h Handle) error {
	if typ == TypeFree || uint32(typ) > t.typeLimit {
		return invalidParamf("AssignHandle: invalid type %d (limit %d)", typ, t.typeLimit)
	}

	index, generation, _ := Decode(h)
	if generation < MinGeneration {
		return invalidParamf("AssignHandle: handle %#x has generation 0", uint32(h))
	}

	if index >= t.size {
		if err := t.expand(min(index+t.growthIncrement, MaxSize)); err != nil {
			return err
		}
	}

	slot := &t.slots[index]
	if !slot.isFree() {
		return invalidParamf("AssignHandle: slot %d is not free", index)
	}

	prev, next := slot.prevFree, slot.nextFree
	if (prev != invalidIndex && prev >= t.size) || (next != invalidIndex && next >= t.size) {
		return invalidParamf("AssignHandle: slot %d has out-of-range free-list neighbors (prev=%d, next=%d)",
			index, prev, next)
	}

	if prev == invalidIndex {
		t.freeHead = next
	} else {
		t.slots[prev].nextFree = next
	}
	if next == invalidIndex {
		t.freeTail = prev
	} else {
		t.slots[next].prevFree = prev
	}

	*slot = Slot{
		object:     obj,
		typ:        typ,
		generation: generation,
		instance:   0,
		destroyed:  false,
	}
	t.freeCount--

	return nil
}

// AssignHandleSafe is AssignHandle performed under the table's exclusive
// lock.
func (t *Table) AssignHandleSafe(obj Object, typ uint8, h Handle) (err error) {
	t.Lock()
	defer t.Unlock()
	defer recoverCorruption(&err)
	return t.AssignHandle(obj, typ, h)
}
