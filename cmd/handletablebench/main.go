// Copyright 2024 The WSL2-Kernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command handletablebench drives a handle table through alloc/free
// cycles and reports basic statistics. It exists to exercise the library
// under load the way lldb's lab/1 and db_bench harnesses exercise the
// allocator package it ships alongside — it is tooling around the handle
// table, not a CLI surface of the handle table itself.
package main

import (
	"math/rand"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/phillipmacon/WSL2-Kernel/handletable"
	"github.com/phillipmacon/WSL2-Kernel/kprocess"
)

const benchObjectType uint8 = 1

func main() {
	var (
		maxHandles = pflag.IntP("count", "n", 10_000, "target number of live handles")
		seed       = pflag.Int64P("seed", "s", 42, "PRNG seed")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	proc := kprocess.New(1, "handletablebench")
	tbl := handletable.New(proc, handletable.Options{Logger: sugar})

	rng := rand.New(rand.NewSource(*seed))
	t0 := time.Now()

	handles := make([]handletable.Handle, 0, *maxHandles)
	for len(handles) < *maxHandles {
		for nalloc := len(handles)/2 + 1; nalloc != 0 && len(handles) < *maxHandles; nalloc-- {
			h := tbl.AllocHandleSafe(rng.Int(), benchObjectType, true)
			if h == 0 {
				sugar.Errorw("alloc failed", "live", len(handles))
				continue
			}
			handles = append(handles, h)
		}

		for ndel := len(handles) / 4; ndel != 0; ndel-- {
			if len(handles) < 2 {
				break
			}
			i := rng.Intn(len(handles))
			h := handles[i]
			last := len(handles) - 1
			handles[i] = handles[last]
			handles = handles[:last]
			tbl.FreeHandleSafe(benchObjectType, h)
		}
	}

	elapsed := time.Since(t0)
	sugar.Infow("bench complete",
		"live_handles", len(handles),
		"table_size", tbl.Size(),
		"free_count", tbl.FreeCount(),
		"used_count", tbl.UsedEntryCount(),
		"elapsed", elapsed,
	)
}
