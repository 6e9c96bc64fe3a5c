// Package parallel splits row-wise work over goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Rows per goroutine below which work stays sequential.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 256,
	}
}

// Chunks calls f once per contiguous range [start, end) covering [0, n).
// Ranges run concurrently unless cfg disables it or n is below
// cfg.MinChunkSize, in which case f(0, n) runs on the caller's goroutine.
func Chunks(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		f(0, n)
		return
	}

	size := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, min(start+size, n))
	}
	wg.Wait()
}

// For executes f(i) for every i in [0, n). Calls for different i may run
// concurrently, so f must only touch state owned by row i.
func For(n int, f func(i int), cfg Config) {
	Chunks(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}
