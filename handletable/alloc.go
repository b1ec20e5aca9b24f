// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// AllocHandle issues a fresh handle for obj, tagged typ (which must be
// greater than TypeFree and at most the table's TypeLimit), and returns it.
// If makeValid is false the slot is created already marked destroyed (see
// MarkDestroyed) — useful for callers that want to reserve a handle before
// the object behind it is fully initialized.
//
// AllocHandle returns the null handle (0) on any failure: an out-of-capacity
// table the allocator could not grow, an invalid type tag, or detected
// free-list corruption. A non-zero return always names the slot just filled;
// when makeValid is false that slot is marked destroyed, so strict lookups
// refuse the handle until UnmarkDestroyed. The caller must hold the exclusive
// lock; AllocHandleSafe acquires it automatically.
func (t *Table) AllocHandle(obj Object, typ uint8, makeValid bool) Handle {
	if typ == TypeFree || uint32(typ) > t.typeLimit {
		t.log.Errorw("handletable: AllocHandle: invalid type", "type", typ, "limit", t.typeLimit)
		return 0
	}

	var err error
	func() {
		defer recoverCorruption(&err)
		err = t.ensureFree()
	}()
	if err != nil {
		t.log.Errorw("handletable: AllocHandle: growth failed", "err", err)
		return 0
	}

	if t.freeHead >= t.size {
		t.log.Errorw("handletable: AllocHandle: free_head out of range",
			"free_head", t.freeHead, "size", t.size)
		return 0
	}

	index := t.freeHead
	slot := &t.slots[index]
	if !slot.isFree() {
		t.log.Errorw("handletable: AllocHandle: free_head slot not free", "index", index)
		return 0
	}

	nextFree := slot.nextFree
	t.freeHead = nextFree
	if nextFree != invalidIndex {
		t.slots[nextFree].prevFree = invalidIndex
	} else {
		t.freeTail = invalidIndex
	}

	generation := slot.generation
	*slot = Slot{
		object:     obj,
		typ:        typ,
		generation: generation,
		instance:   0,
		destroyed:  !makeValid,
	}
	t.freeCount--

	return Encode(index, generation, 0)
}

// AllocHandleSafe is AllocHandle performed under the table's exclusive lock.
func (t *Table) AllocHandleSafe(obj Object, typ uint8, makeValid bool) Handle {
	t.Lock()
	defer t.Unlock()
	return t.AllocHandle(obj, typ, makeValid)
}
