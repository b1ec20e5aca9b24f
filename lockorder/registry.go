// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockorder provides a process-wide, advisory lock-order registry.
//
// It is modeled on the partial-order-of-lock-classes idea in the Go runtime's
// lockrank.go: every lock class a component takes is registered under a tag
// before the underlying mutex is acquired, and deregistered after release, so
// that a deadlock detector (not implemented here — this registry only keeps
// the bookkeeping a detector would need) can later be layered on top.
//
// The registry does not itself prevent deadlocks; it is "purely advisory", as
// the handle table's concurrency contract requires of its lock-order
// collaborator. All it guarantees on its own is accurate holder counts and a
// log line when Release is called without a matching Acquire, which signals a
// caller bug rather than table corruption.
package lockorder

import "sync"

// Logger is the narrow diagnostic sink the registry logs through. It is
// satisfied by *zap.SugaredLogger and by NopLogger.
type Logger interface {
	Debugw(msg string, kv ...any)
	Errorw(msg string, kv ...any)
}

// nopLogger discards everything. Used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debugw(string, ...any) {}
func (nopLogger) Errorw(string, ...any) {}

// NopLogger is a Logger that discards all messages.
var NopLogger Logger = nopLogger{}

// Registry tracks how many times each lock-class tag is currently held,
// process-wide. Registries are created with New; the zero value has no
// holder map or logger, and Acquire or an unmatched Release on it panics.
type Registry struct {
	log Logger

	mu      sync.Mutex
	holders map[string]int
}

// New returns a Registry that logs through log. A nil log is replaced with
// NopLogger, matching the nil-to-no-op convention used for the table's own
// Logger collaborator.
func New(log Logger) *Registry {
	if log == nil {
		log = NopLogger
	}
	return &Registry{log: log, holders: make(map[string]int)}
}

// Acquire records that the calling goroutine is about to take a lock of the
// given class. It never blocks and never fails; it is bookkeeping only.
func (r *Registry) Acquire(tag string) {
	r.mu.Lock()
	r.holders[tag]++
	r.mu.Unlock()
}

// Release records that a lock of the given class was released. Releasing a
// tag with no outstanding acquire is logged as an error (a caller bug) but is
// otherwise a no-op; it never panics, since the registry is advisory and must
// not itself become a source of failures in the critical section it wraps.
func (r *Registry) Release(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.holders[tag]
	if !ok || n <= 0 {
		r.log.Errorw("lockorder: release without matching acquire", "tag", tag)
		return
	}
	if n == 1 {
		delete(r.holders, tag)
		return
	}
	r.holders[tag] = n - 1
}

// Holders reports the current number of outstanding acquires for tag. It
// exists for tests and diagnostics.
func (r *Registry) Holders(tag string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.holders[tag]
}
