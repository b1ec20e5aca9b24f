// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// NextEntry advances *cursor to the next occupied slot at index >= *cursor.
// On a hit it writes the slot's type, canonical handle, and object to typ,
// handle, and obj respectively (any of which may be nil if the caller
// doesn't need that field), advances *cursor to index+1, and returns true.
// On reaching the end of the table it returns false and leaves *cursor
// unchanged.
//
// Callers hold the shared lock across an entire iteration: NextEntry does
// not itself lock, since a single RLock/RUnlock pair must span the whole
// walk for the "each occupied slot exactly once" guarantee to hold.
func (t *Table) NextEntry(cursor *uint32, typ *uint8, handle *Handle, obj *Object) bool {
	for i := *cursor; i < t.size; i++ {
		s := &t.slots[i]
		if s.isFree() {
			continue
		}

		if typ != nil {
			*typ = s.typ
		}
		if handle != nil {
			*handle = Encode(i, s.generation, s.instance)
		}
		if obj != nil {
			*obj = s.object
		}
		*cursor = i + 1
		return true
	}

	return false
}
