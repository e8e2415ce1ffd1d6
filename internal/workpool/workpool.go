// Package workpool runs independent tasks on a bounded set of goroutines and
// streams their results back in completion order.
package workpool

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task.
type Result[T, R any] struct {
	Index int // position of the task in the submitted slice
	Task  T
	Value R
	Err   error
}

// Func processes one task.
type Func[T, R any] func(ctx context.Context, task T) (R, error)

// Pool bounds how many tasks run at once.
type Pool[T, R any] struct {
	workers int
}

// New returns a pool running at most workers tasks concurrently.
// Values below 1 are treated as 1.
func New[T, R any](workers int) *Pool[T, R] {
	return &Pool[T, R]{workers: max(workers, 1)}
}

// Workers returns the concurrency bound.
func (p *Pool[T, R]) Workers() int {
	return p.workers
}

// Run submits every task up front and returns a channel that yields one
// Result per task as each finishes. The channel is closed after the last
// result. A failing or panicking task only affects its own Result.
//
// Once ctx is done, tasks that have not started report ctx.Err() without
// running.
func (p *Pool[T, R]) Run(ctx context.Context, tasks []T, fn Func[T, R]) <-chan Result[T, R] {
	results := make(chan Result[T, R], len(tasks))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	go func() {
		defer close(results)
		for i, task := range tasks {
			g.Go(func() error {
				results <- runTask(ctx, i, task, fn)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return results
}

func runTask[T, R any](ctx context.Context, index int, task T, fn Func[T, R]) (res Result[T, R]) {
	res = Result[T, R]{Index: index, Task: task}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			var zero R
			res.Value = zero
			res.Err = &TaskPanicError{Index: index, Value: r, Stack: debug.Stack()}
		}
	}()

	res.Value, res.Err = fn(ctx, task)
	return res
}

// Chunk splits items into contiguous slices of size elements. The last
// slice may be shorter. Sizes below 1 are treated as 1.
func Chunk[T any](items []T, size int) [][]T {
	size = max(size, 1)
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// TaskPanicError reports a task that panicked instead of returning.
type TaskPanicError struct {
	Index int
	Value any
	Stack []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task %d panicked: %v", e.Index, e.Value)
}
