// Package batch provides the bounded-concurrency job runner shared by every
// batch operation. A fixed pool of workers consumes jobs from a queue; each
// job yields exactly one result, failures never abort siblings, and the
// returned slice preserves submission order regardless of completion order.
package batch

import (
	"sync"

	"github.com/backmassage/framegrab/internal/display"
)

// Job pairs one opaque input item with its deterministic output path.
// Descriptors are built by the caller before submission and never mutated.
type Job[T any] struct {
	Input      T
	OutputPath string
}

// Result is the outcome of one job. Err is nil on success; Detail carries
// the human-readable success line (sizes, derived names).
type Result[T any] struct {
	Job    Job[T]
	Detail string
	Err    error
}

// Failed reports whether the job ended in failure.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Run executes work over every job with a fixed pool of workers and returns
// one result per job, indexed identically to jobs. Progress is reported to
// sink once per completed job in completion order, guarded by the same lock
// as the counter so the completed count is strictly monotonic. There is no
// retry and no cancellation: every submitted job runs exactly once.
//
// With workers == 1 execution order matches submission order; with more
// workers execution and completion order are unspecified, but the result
// slice is always assembled in submission order.
func Run[T any](jobs []Job[T], workers int, sink display.ProgressSink, work func(Job[T]) Result[T]) []Result[T] {
	if workers < 1 {
		workers = 1
	}
	if sink == nil {
		sink = display.NoopSink{}
	}

	results := make([]Result[T], len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = work(jobs[i])

				mu.Lock()
				completed++
				sink.OnJobComplete(completed, len(jobs))
				mu.Unlock()
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
