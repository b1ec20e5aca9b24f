// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"github.com/phillipmacon/WSL2-Kernel/internal/slotalloc"
	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

// Tag identifies the purpose of a slot-array allocation to the backing
// SlotAllocator. It is opaque to this package otherwise.
type Tag string

// TagHandleTable is the fixed tag this package uses for every slot-array
// allocation it makes.
const TagHandleTable Tag = "HANDLE_TABLE"

// SlotAllocator is the typed, process-and-tag-keyed allocation service the
// table uses to grow its backing array. It is the Go shape of the external
// "Allocator" collaborator in spec §6: allocate(process, tag, bytes) ->
// pointer|null, free(process, tag, pointer), specialized to slot arrays
// rather than raw bytes.
type SlotAllocator interface {
	// Allocate returns a freshly zero-valued slice of n slots, or an error
	// if the allocator refuses (surfaced by the table as ErrNoMemory).
	Allocate(proc *kprocess.Process, tag Tag, n int) ([]Slot, error)

	// Free releases slots previously returned by Allocate with the same
	// (proc, tag, len(slots)).
	Free(proc *kprocess.Process, tag Tag, slots []Slot)
}

// arenaAllocator adapts an *slotalloc.Arena to SlotAllocator.
type arenaAllocator struct {
	arena *slotalloc.Arena
}

// NewArenaAllocator returns a SlotAllocator backed by an in-memory,
// process-scoped arena with no allocation ceiling. Use
// NewArenaAllocatorWithLimit to exercise ErrNoMemory deterministically.
func NewArenaAllocator() SlotAllocator {
	return arenaAllocator{arena: slotalloc.NewArena(0)}
}

// NewArenaAllocatorWithLimit returns a SlotAllocator that refuses to grow any
// single (process, tag) bucket beyond limitSlots outstanding slots.
func NewArenaAllocatorWithLimit(limitSlots int64) SlotAllocator {
	return arenaAllocator{arena: slotalloc.NewArena(limitSlots)}
}

func (a arenaAllocator) Allocate(proc *kprocess.Process, tag Tag, n int) ([]Slot, error) {
	return slotalloc.Allocate[Slot](a.arena, proc, slotalloc.Tag(tag), n)
}

func (a arenaAllocator) Free(proc *kprocess.Process, tag Tag, slots []Slot) {
	slotalloc.Free(a.arena, proc, slotalloc.Tag(tag), slots)
}
