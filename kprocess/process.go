// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kprocess models the owning process object that a handle table, or
// any other per-process kernel-side service, is attached to.
package kprocess

import "fmt"

// A Process is the minimal identity a handle table needs from its owner: an
// id unique within this run and a name used only for diagnostics. Real
// kernel-side process bookkeeping (VA space, handle tables of other kinds,
// security context, ...) lives above this package; Process is intentionally
// thin, in the spirit of dbm.Options, which carries only what its collaborator
// needs and nothing more.
type Process struct {
	// ID identifies the process for the lifetime of this run. It is not
	// guaranteed to be stable across process restarts.
	ID uint64

	// Name is a human-readable label used in diagnostics only.
	Name string
}

// New returns a Process with the given id and name. Name may be empty, in
// which case diagnostics fall back to the numeric id.
func New(id uint64, name string) *Process {
	return &Process{ID: id, Name: name}
}

// String implements fmt.Stringer for diagnostic logging.
func (p *Process) String() string {
	if p == nil {
		return "<nil process>"
	}
	if p.Name == "" {
		return fmt.Sprintf("process#%d", p.ID)
	}
	return fmt.Sprintf("%s(#%d)", p.Name, p.ID)
}
