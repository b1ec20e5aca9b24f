// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package handletable implements a generational handle table: a
// process-scoped registry that issues opaque 32-bit handles for kernel-side
// objects and resolves them back to objects with protection against stale,
// forged, or type-confused references.
//
// A handle packs an index into the table's slot array, a 2-bit generation
// counter, and a 6-bit caller-opaque instance tag into a single uint32 (see
// Handle, Encode, Decode). The table grows in fixed increments, maintains a
// free-list threaded through its own backing array, and proactively grows
// whenever the free-list gets short, so that a freed slot's generation has
// diverged from any stale handle long before the slot is reused.
//
// Table is not safe for concurrent use except through Lock/RLock or the
// *Safe method variants; see the package-level concurrency discussion on
// Table.
package handletable
