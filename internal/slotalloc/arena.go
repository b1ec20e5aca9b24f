// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slotalloc implements the typed, process-and-tag-keyed allocation
// service the handle table consumes as its external "allocator" collaborator
// (see handletable's SlotAllocator). It is adapted from lldb.Allocator's
// Filer-backed block storage: where lldb hands out byte-addressed blocks
// inside a file and reports AllocStats on request, Arena hands out Go slices
// of a caller-chosen element type inside a process-scoped, in-memory arena
// and reports the same kind of accounting. Persistence across process
// lifetime is explicitly out of scope (see spec Non-goals), so unlike lldb
// there is no backing Filer — the arena is Go's own allocator, with
// accounting and an optional ceiling layered on top so growth-failure paths
// are reachable in tests.
package slotalloc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

// ErrLimitExceeded is returned by Allocate when the requested count would
// push a (process, tag) above its configured ceiling.
var ErrLimitExceeded = errors.New("slotalloc: allocation limit exceeded")

// Tag is an opaque accounting key, analogous to the fixed HANDLE_TABLE tag
// lldb/dbm pass through their Filer layer. It carries no behavior.
type Tag string

// key identifies one accounting bucket: a process and a tag.
type key struct {
	proc uint64
	tag  Tag
}

// Stats reports bookkeeping for one (process, tag) bucket. It is the
// element-count analogue of lldb.AllocStats, which reports bytes; Arena deals
// in typed slices, so it reports element counts instead.
type Stats struct {
	Allocated int64 // elements currently outstanding
	Calls     int64 // number of successful Allocate calls
}

// Arena is a process-scoped allocation service. The zero value has no
// ceiling (every request succeeds unless int overflow would occur); use
// NewArena to set one.
type Arena struct {
	limit int64 // 0 == unlimited

	mu    sync.Mutex
	stats map[key]*Stats
}

// NewArena returns an Arena that refuses to grow any single (process, tag)
// bucket beyond limitElements. A limitElements of 0 means unlimited.
func NewArena(limitElements int64) *Arena {
	return &Arena{limit: limitElements, stats: make(map[key]*Stats)}
}

func (a *Arena) bucket(proc *kprocess.Process, tag Tag) *Stats {
	k := key{tag: tag}
	if proc != nil {
		k.proc = proc.ID
	}
	if a.stats == nil {
		a.stats = make(map[key]*Stats)
	}
	s, ok := a.stats[k]
	if !ok {
		s = &Stats{}
		a.stats[k] = s
	}
	return s
}

// Allocate returns a freshly made slice of n elements of type T, accounted
// against (proc, tag). It fails with ErrLimitExceeded if the arena has a
// ceiling and this request would exceed it, and with a plain error if n is
// negative. A count of 0 returns a nil slice and no error.
func Allocate[T any](a *Arena, proc *kprocess.Process, tag Tag, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("slotalloc: negative count %d", n)
	}
	if n == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.bucket(proc, tag)
	if a.limit > 0 && s.Allocated+int64(n) > a.limit {
		return nil, fmt.Errorf("%w: proc=%v tag=%s requested=%d outstanding=%d limit=%d",
			ErrLimitExceeded, proc, tag, n, s.Allocated, a.limit)
	}

	s.Allocated += int64(n)
	s.Calls++
	return make([]T, n), nil
}

// Free releases the accounting for slots, which must have been returned by a
// prior Allocate call with the same (proc, tag) and length. Go's GC reclaims
// the backing array once it is no longer referenced; Free only adjusts
// bookkeeping.
func Free[T any](a *Arena, proc *kprocess.Process, tag Tag, slots []T) {
	if len(slots) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.bucket(proc, tag)
	s.Allocated -= int64(len(slots))
	if s.Allocated < 0 {
		s.Allocated = 0
	}
}

// StatsFor returns a copy of the current accounting for (proc, tag).
func (a *Arena) StatsFor(proc *kprocess.Process, tag Tag) Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return *a.bucket(proc, tag)
}
