// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// expand grows the table, requiring the caller to already hold the exclusive
// lock. The new size is the larger of size + growthIncrement and
// minRequired, so minRequired of 0 means "just grow by growthIncrement"; a
// larger minRequired is used as is, not rounded up to a whole increment, as
// assign_handle needs when asked to adopt a handle beyond the current
// capacity (spec §4.5 step 2).
//
// It returns ErrNoMemory if the requested size would exceed MaxSize, or if
// the SlotAllocator refuses the request, and *ErrCorruption (via panic, see
// corrupt) if the free-list's tail is not properly terminated beforehand.
// Neither failure mutates the table.
func (t *Table) expand(minRequired uint32) error {
	if t.freeCount > 0 {
		if t.slots[t.freeTail].nextFree != invalidIndex {
			corrupt("free-list tail %d has non-terminal next %d before growth",
				t.freeTail, t.slots[t.freeTail].nextFree)
		}
	}

	newSize := t.size + t.growthIncrement
	if minRequired > newSize {
		newSize = minRequired
	}
	if newSize > MaxSize {
		return noMemoryf("requested table size %d exceeds maximum %d", newSize, MaxSize)
	}

	fresh, err := t.allocator.Allocate(t.owner, TagHandleTable, int(newSize))
	if err != nil {
		return noMemoryf("allocator refused %d slots: %v", newSize, err)
	}

	oldSize := t.size
	copy(fresh, t.slots)
	t.allocator.Free(t.owner, TagHandleTable, t.slots)
	t.slots = fresh

	added := newSize - oldSize
	prevTail := t.freeTail
	for i := uint32(0); i < added; i++ {
		idx := oldSize + i
		s := freeSlot(MinGeneration)
		switch {
		case added == 1:
			s.prevFree, s.nextFree = prevTail, invalidIndex
		case i == 0:
			s.prevFree, s.nextFree = prevTail, idx+1
		case i == added-1:
			s.prevFree, s.nextFree = idx-1, invalidIndex
		default:
			s.prevFree, s.nextFree = idx-1, idx+1
		}
		t.slots[idx] = s
	}

	if t.freeCount > 0 {
		t.slots[t.freeTail].nextFree = oldSize
	} else {
		t.freeHead = oldSize
	}
	t.freeTail = newSize - 1
	t.size = newSize
	t.freeCount += added

	return nil
}

// ensureFree grows the table if its free-list has dropped to or below
// minFreeEntries, per invariant I6. It is the entry check every allocation
// path performs before touching the free-list.
func (t *Table) ensureFree() error {
	if t.freeCount > t.minFreeEntries {
		return nil
	}
	return t.expand(0)
}
