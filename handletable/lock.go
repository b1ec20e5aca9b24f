// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// Lock acquires the table's exclusive lock, required by every mutating
// operation (AllocHandle, AssignHandle, FreeHandle, MarkDestroyed,
// UnmarkDestroyed, and growth) when not using a *Safe variant. It registers
// the acquisition with the table's OrderRegistry under the HANDLETABLE tag
// before taking the mutex, and deregisters in Unlock; the registry is purely
// advisory and does not itself detect or prevent lock-order inversions.
func (t *Table) Lock() {
	t.order.Acquire(lockOrderTag)
	t.mu.Lock()
}

// Unlock releases the exclusive lock taken by Lock.
func (t *Table) Unlock() {
	t.mu.Unlock()
	t.order.Release(lockOrderTag)
}

// RLock acquires the table's shared lock, required by every lookup and by
// iteration. Multiple readers may hold it concurrently; it excludes Lock.
func (t *Table) RLock() {
	t.order.Acquire(lockOrderTag)
	t.mu.RLock()
}

// RUnlock releases the shared lock taken by RLock.
func (t *Table) RUnlock() {
	t.mu.RUnlock()
	t.order.Release(lockOrderTag)
}
