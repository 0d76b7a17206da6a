package main

import (
	"runtime"
	"sync"
)

// maxWorkers caps --workers and RICHTEXT_WORKERS.
const maxWorkers = 64

// resolvePoolSize determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for
// containers). Rendering is CPU-bound, so auto uses every available CPU,
// up to 8.
func resolvePoolSize(explicit int) int {
	if explicit > 0 {
		return min(explicit, maxWorkers)
	}
	return min(max(runtime.GOMAXPROCS(0), 1), 8)
}

// runPool calls fn for every index in [0, n) from at most workers
// goroutines and returns once all calls have finished.
func runPool(workers, n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers = min(max(workers, 1), n)

	jobs := make(chan int, n)
	for i := range n {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				fn(idx)
			}
		}()
	}
	wg.Wait()
}
