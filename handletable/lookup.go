// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// IsHandleValid reports whether h currently names a live, correctly-typed
// slot. A handle is valid iff all of the following hold:
//
//   - its index is within the table's current size,
//   - its generation matches the slot's current generation,
//   - the slot is not marked destroyed, unless ignoreDestroyed is true,
//   - the slot is occupied (not on the free-list), and
//   - requestedType is TypeFree (meaning "any occupied type is acceptable")
//     or equals the slot's type.
//
// Any failure is logged at Debug level and returns false; IsHandleValid
// never mutates the table and never panics on an invalid handle — only
// structural corruption (a free-list tail that is not terminated when the
// table grows) does that, and validation never touches the free-list. The caller must hold at least
// the shared lock.
func (t *Table) IsHandleValid(h Handle, ignoreDestroyed bool, requestedType uint8) bool {
	index, generation, _ := Decode(h)

	if index >= t.size {
		t.log.Debugw("handletable: handle invalid: index out of range",
			"handle", h, "index", index, "size", t.size)
		return false
	}

	slot := &t.slots[index]

	if slot.generation != generation {
		t.log.Debugw("handletable: handle invalid: stale generation",
			"handle", h, "have", slot.generation, "want", generation)
		return false
	}

	if slot.destroyed && !ignoreDestroyed {
		t.log.Debugw("handletable: handle invalid: destroyed", "handle", h)
		return false
	}

	if slot.typ == TypeFree {
		t.log.Debugw("handletable: handle invalid: slot is free", "handle", h)
		return false
	}

	if requestedType != TypeFree && requestedType != slot.typ {
		t.log.Debugw("handletable: handle invalid: type mismatch",
			"handle", h, "have", slot.typ, "want", requestedType)
		return false
	}

	return true
}

// GetObject returns the object h refers to, or nil if h is not valid for any
// occupied, non-destroyed type.
func (t *Table) GetObject(h Handle) Object {
	return t.GetObjectByType(h, TypeFree)
}

// GetObjectByType is GetObject with an additional type-match requirement;
// pass TypeFree to accept any type, matching GetObject.
func (t *Table) GetObjectByType(h Handle, typ uint8) Object {
	if !t.IsHandleValid(h, false, typ) {
		return nil
	}
	return t.slots[indexOf(h)].object
}

// GetObjectIgnoreDestroyed is GetObjectByType but also accepts slots marked
// destroyed, supporting the two-phase deletion protocol: a destroyed slot's
// object remains reachable this way until FreeHandle physically removes it,
// or UnmarkDestroyed rolls the logical delete back.
func (t *Table) GetObjectIgnoreDestroyed(h Handle, typ uint8) Object {
	if !t.IsHandleValid(h, true, typ) {
		return nil
	}
	return t.slots[indexOf(h)].object
}

// GetObjectType returns the type tag h resolves to, or TypeFree if h is not
// valid, letting callers discriminate "invalid" from "valid but TypeFree" in
// the same call (TypeFree is never a valid occupied type, so the two never
// collide).
func (t *Table) GetObjectType(h Handle) uint8 {
	if !t.IsHandleValid(h, true, TypeFree) {
		return TypeFree
	}
	return t.slots[indexOf(h)].typ
}

// GetEntryObject returns the object stored at index, with no validation
// beyond the precondition that index < t.Size(); it is meant for iteration
// (NextEntry), which already knows the slot is occupied.
func (t *Table) GetEntryObject(index uint32) Object {
	return t.slots[index].object
}

// GetEntryType returns the type tag stored at index, with the same
// precondition as GetEntryObject.
func (t *Table) GetEntryType(index uint32) uint8 {
	return t.slots[index].typ
}

// BuildEntryHandle reconstructs the canonical Handle for the occupied slot
// at index, using the slot's current generation and instance. It does not
// validate that the slot is occupied.
func (t *Table) BuildEntryHandle(index uint32) Handle {
	s := &t.slots[index]
	return Encode(index, s.generation, s.instance)
}
