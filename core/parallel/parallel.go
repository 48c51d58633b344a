// Package parallel fans row-range work out across CPU cores.
//
// Callers must write only to the rows in their [start, end) range so the
// result does not depend on scheduling.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count below which work stays on the calling goroutine.
const DefaultThreshold = 1000

// Parallelize splits items into at most GOMAXPROCS contiguous ranges and
// calls fn(start, end) for each range concurrently. It returns once every call finished.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) sequentially when items <= threshold
// and delegates to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
