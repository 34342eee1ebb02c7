// Package parallel provides bounded fork-join loops over index ranges. Every
// call is synchronous bulk data parallelism: it returns only when all range
// partitions have completed, so callers get a full barrier between passes.
package parallel

import (
	"runtime"
)

// threshold is the smallest range worth fanning out. Below it goroutine
// overhead dominates.
const threshold = 64

// NumWorkers reports the fan-out width used by For and Reduce.
func NumWorkers() int { return runtime.NumCPU() }

// For calls fn(i) for every i in [0, n). Partitions run on separate
// goroutines; fn must not share mutable state across indices.
func For(n int, fn func(i int)) {
	if n < threshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := runtime.NumCPU()
	chunk := (n + workers - 1) / workers
	out := make(chan struct{}, workers)

	launched := 0
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		launched++
		go func(lo, hi int) {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			out <- struct{}{}
		}(lo, hi)
	}
	for i := 0; i < launched; i++ {
		<-out
	}
}

// Reduce folds value(i) over [0, n) starting from initial. combine must be
// associative and commutative: partial reductions are combined in whatever
// order the workers finish.
func Reduce[T any](n int, initial T, value func(i int) T, combine func(a, b T) T) T {
	if n < threshold {
		acc := initial
		for i := 0; i < n; i++ {
			acc = combine(acc, value(i))
		}
		return acc
	}

	workers := runtime.NumCPU()
	chunk := (n + workers - 1) / workers
	out := make(chan T, workers)

	launched := 0
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		launched++
		go func(lo, hi int) {
			acc := initial
			for i := lo; i < hi; i++ {
				acc = combine(acc, value(i))
			}
			out <- acc
		}(lo, hi)
	}

	acc := initial
	for i := 0; i < launched; i++ {
		acc = combine(acc, <-out)
	}
	return acc
}
