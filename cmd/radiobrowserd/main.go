// Command radiobrowserd runs the station-directory HTTP API server.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"os"

	"github.com/pickaboo/radiobrowser-api-go/store/memstore"
	"github.com/pickaboo/radiobrowser-api-go/svc"
)

func main() {
	// store/memstore ships as the default DataStore: a slice-backed,
	// mutex-guarded store.Store with no persistence across restarts. Swap
	// in a real database-backed store.Store implementation here once one
	// exists; svc.Run only depends on the interface.
	st := memstore.New()
	os.Exit(svc.Run(st))
}
