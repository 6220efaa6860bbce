package converter

import (
	"fmt"
	"runtime"
	"sync"

	"aeropack/contracts"
	"aeropack/raster"
)

// maxPoolSize caps parallel conversions; raster encoders are I/O-bound and
// oversubscribing them past this point only adds contention.
const maxPoolSize = 8

// PoolSize returns the worker count for a host with the given number of
// logical CPUs: one core is left for the coordinator, capped at maxPoolSize.
func PoolSize(logicalCPUs int) int {
	size := logicalCPUs - 1
	if size < 1 {
		size = 1
	}
	if size > maxPoolSize {
		size = maxPoolSize
	}
	return size
}

// RunBatch converts every work item and returns one outcome per item, in
// submission order. With parallel set and more than one item, conversions fan
// out across a bounded pool; workers is the pool width, or 0 for the
// PoolSize default. A single item's failure never cancels or skips siblings.
func RunBatch(lib raster.Library, opts EncodeOptions, items []contracts.WorkItem, parallel bool, workers int) []contracts.ConversionOutcome {
	outcomes := make([]contracts.ConversionOutcome, len(items))

	if !parallel || len(items) <= 1 {
		for i, item := range items {
			fmt.Printf("Processing %s...\n", item.SourcePath)
			outcomes[i] = Convert(lib, opts, item)
		}
		return outcomes
	}

	if workers <= 0 {
		workers = PoolSize(runtime.NumCPU())
	}
	if workers > len(items) {
		workers = len(items)
	}
	fmt.Printf("Parallel processing with %d workers...\n", workers)

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire a token
			defer func() { <-sem }() // Release the token

			outcomes[i] = Convert(lib, opts, items[i])
		}(i)
	}
	wg.Wait()
	return outcomes
}
