// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// TypeFree is the reserved type tag marking a slot as free (on the
// free-list). No occupied slot ever carries this type.
const TypeFree uint8 = 0

// Object is what a slot stores. The table never inspects it beyond storing
// and returning it; the concrete kernel object types referenced by handles
// are an external collaborator, out of this package's scope.
type Object any

// A Slot is one element of the table's backing array. It is a tagged variant
// discriminated by typ: when typ == TypeFree the slot is on the free-list and
// only prevFree/nextFree are meaningful; otherwise the slot is occupied and
// object/instance/destroyed are meaningful. generation is preserved across
// both shapes. It is advanced when a slot transitions to free (see
// Table.FreeHandle) and overwritten with the adopted handle's generation by
// Table.AssignHandle; AllocHandle leaves it as it is.
//
// Go has no native tagged union; the two shapes share this struct rather
// than overlapping storage, but the invariant still holds logically: a free
// slot's object/instance/destroyed fields are always their zero values, and
// an occupied slot's prevFree/nextFree are never read.
type Slot struct {
	object     Object
	typ        uint8
	generation uint32
	instance   uint32
	destroyed  bool

	prevFree uint32
	nextFree uint32
}

func freeSlot(generation uint32) Slot {
	return Slot{
		typ:        TypeFree,
		generation: generation,
		prevFree:   invalidIndex,
		nextFree:   invalidIndex,
	}
}

// isFree reports whether the slot is currently on the free-list.
func (s *Slot) isFree() bool { return s.typ == TypeFree }
