// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"sync"

	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

// A Table is a densely-indexed, dynamically-grown array of slots, each
// either occupied (holding an object, a type tag, a generation, an instance
// tag, and a destroyed flag) or free (linked into a doubly-linked free-list
// threaded through the array itself).
//
// Table is created empty and grows on demand in fixed increments; it is
// never shrunk. Mutating operations (AllocHandle, AssignHandle, FreeHandle,
// MarkDestroyed, UnmarkDestroyed, and growth) require the exclusive lock;
// lookups and iteration require the shared lock. The *Safe method variants
// acquire the exclusive lock, perform one mutation, and release it; the
// non-safe variants assume the caller already holds the correct lock mode,
// which lets callers batch several mutations under one critical section.
// Table enforces none of this at runtime beyond the lockorder bookkeeping
// below: calling a non-safe mutator without holding Lock races exactly like
// misusing a sync.RWMutex would.
type Table struct {
	mu    sync.RWMutex
	order OrderRegistry
	log   Logger

	allocator SlotAllocator
	owner     *kprocess.Process

	growthIncrement uint32
	minFreeEntries  uint32
	typeLimit       uint32

	slots     []Slot
	size      uint32
	freeHead  uint32
	freeTail  uint32
	freeCount uint32

	closed bool
}

// New returns an empty Table (no backing array) owned by proc, configured by
// opts. The table must be grown, implicitly by the first AllocHandle or
// AssignHandle call, before it has any capacity.
func New(proc *kprocess.Process, opts Options) *Table {
	opts = opts.withDefaults()
	return &Table{
		order:           opts.OrderRegistry,
		log:             opts.Logger,
		allocator:       opts.Allocator,
		owner:           proc,
		growthIncrement: opts.GrowthIncrement,
		minFreeEntries:  opts.MinFreeEntries,
		typeLimit:       opts.TypeLimit,
		freeHead:        invalidIndex,
		freeTail:        invalidIndex,
	}
}

// Destroy releases the table's backing array through its SlotAllocator. Any
// handle issued by this table becomes permanently invalid; Destroy does not
// touch the objects the slots referenced. Destroy requires the caller to
// hold the exclusive lock, matching every other structural mutation.
func (t *Table) Destroy() {
	if t.closed {
		return
	}
	t.allocator.Free(t.owner, TagHandleTable, t.slots)
	t.slots = nil
	t.size = 0
	t.freeHead, t.freeTail = invalidIndex, invalidIndex
	t.freeCount = 0
	t.closed = true
}

// Size returns the current capacity of the table (occupied + free slots).
func (t *Table) Size() uint32 { return t.size }

// FreeCount returns the current number of free slots.
func (t *Table) FreeCount() uint32 { return t.freeCount }

// UsedEntryCount returns the number of occupied slots: size - free_count
// (invariant I1).
func (t *Table) UsedEntryCount() uint32 { return t.size - t.freeCount }

// Owner returns the process this table is attached to.
func (t *Table) Owner() *kprocess.Process { return t.owner }
