// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handletable

// MarkDestroyed flags h's slot as logically deleted: the object and type
// remain in place, but subsequent strict lookups (GetObject,
// GetObjectByType) refuse the handle while GetObjectIgnoreDestroyed still
// resolves it. This is the first half of the two-phase deletion protocol;
// the delete is either committed by a later FreeHandle or rolled back by
// UnmarkDestroyed.
//
// MarkDestroyed validates with ignoreDestroyed = false, so marking an
// already-destroyed handle fails (returns false) rather than being
// idempotent. The caller must hold the exclusive lock.
func (t *Table) MarkDestroyed(h Handle) bool {
	if !t.IsHandleValid(h, false, TypeFree) {
		return false
	}
	t.slots[indexOf(h)].destroyed = true
	return true
}

// UnmarkDestroyed rolls back a logical delete made by MarkDestroyed,
// restoring h to strict-lookup visibility. It validates with ignoreDestroyed
// = true, since its entire purpose is to act on destroyed slots. The caller
// must hold the exclusive lock.
func (t *Table) UnmarkDestroyed(h Handle) bool {
	if !t.IsHandleValid(h, true, TypeFree) {
		return false
	}
	t.slots[indexOf(h)].destroyed = false
	return true
}
