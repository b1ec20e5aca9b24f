// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a caller-supplied handle or index is
// out of range, or an AssignHandle target slot is already occupied.
var ErrInvalidParameter = errors.New("handletable: invalid parameter")

// ErrNoMemory is returned when the backing SlotAllocator refuses a growth
// request.
var ErrNoMemory = errors.New("handletable: no memory")

// ErrCorruption indicates a detected violation of a structural invariant.
// The one check that raises it is growth finding a free-list tail whose next
// link is not the terminator. It is fatal to the operation that detected it:
// the operation returns (or panics, see corrupt) without mutating the table further, so
// the table's invariants remain whatever they were immediately before the
// corrupt read.
type ErrCorruption struct {
	Reason string
}

func (e *ErrCorruption) Error() string {
	return fmt.Sprintf("handletable: corruption detected: %s", e.Reason)
}

func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

func noMemoryf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNoMemory}, args...)...)
}

// corrupt panics with an *ErrCorruption. It is only ever called while the
// table's exclusive lock is held, immediately before any mutation that would
// depend on the violated invariant, so no partial mutation occurs.
// AssignHandleSafe recovers it at the lock boundary and returns it as an
// error, and AllocHandle recovers it and returns the null handle; callers of
// AssignHandle that manage their own locking see the panic directly, since they are
// already inside the critical section and spec.md prescribes no recovery
// beyond "fail the operation".
func corrupt(reason string, args ...any) {
	panic(&ErrCorruption{Reason: fmt.Sprintf(reason, args...)})
}

// recoverCorruption converts a panicking *ErrCorruption into an error,
// re-panicking anything else. It is deferred by AssignHandleSafe and around
// AllocHandle's growth step.
func recoverCorruption(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ce, ok := r.(*ErrCorruption); ok {
		*errp = ce
		return
	}
	panic(r)
}
