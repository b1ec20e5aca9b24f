// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import "github.com/phillipmacon/WSL2-Kernel/lockorder"

// Defaults, named per spec.md rather than buried as magic numbers.
const (
	// DefaultGrowthIncrement is the number of slots added by each table
	// growth (spec §4.2).
	DefaultGrowthIncrement = 1024

	// DefaultMinFreeEntries is the floor the allocator keeps free_count
	// above (spec §3, I6, MIN_FREE_ENTRIES).
	DefaultMinFreeEntries = 128

	// DefaultTypeLimit is the default ceiling on caller-supplied type
	// tags. Spec.md leaves TYPE_LIMIT a table-wide configuration constant;
	// 255 lets a type tag fit a single byte while leaving TypeFree (0)
	// reserved.
	DefaultTypeLimit = 255

	// MaxSize is the hard ceiling on table size: 2^24 slots, the largest
	// value the 24-bit index field can address.
	MaxSize = uint32(MaxIndex) + 1
)

// Options configures a Table at construction time. The zero Options is
// valid: every field defaults to the value spec.md specifies, in the style
// of dbm.Options, whose zero value (ACIDNone, no WAL) is also a legal,
// documented configuration rather than requiring every caller to mirror the
// defaults by hand.
type Options struct {
	// GrowthIncrement overrides DefaultGrowthIncrement. Zero means use the
	// default.
	GrowthIncrement uint32

	// MinFreeEntries overrides DefaultMinFreeEntries. Zero means use the
	// default.
	MinFreeEntries uint32

	// TypeLimit overrides DefaultTypeLimit. Zero means use the default.
	TypeLimit uint32

	// Allocator supplies slot-array storage. Nil means use an unbounded
	// in-memory arena (NewArenaAllocator).
	Allocator SlotAllocator

	// OrderRegistry receives lock acquire/release notifications. Nil means
	// use a fresh, private lockorder.Registry that logs through Logger.
	OrderRegistry OrderRegistry

	// Logger receives validation-failure and corruption diagnostics. Nil
	// means NopLogger.
	Logger Logger
}

func (o Options) withDefaults() Options {
	if o.GrowthIncrement == 0 {
		o.GrowthIncrement = DefaultGrowthIncrement
	}
	if o.MinFreeEntries == 0 {
		o.MinFreeEntries = DefaultMinFreeEntries
	}
	if o.TypeLimit == 0 {
		o.TypeLimit = DefaultTypeLimit
	}
	if o.Allocator == nil {
		o.Allocator = NewArenaAllocator()
	}
	if o.Logger == nil {
		o.Logger = NopLogger
	}
	if o.OrderRegistry == nil {
		o.OrderRegistry = lockorder.New(o.Logger)
	}
	return o
}
