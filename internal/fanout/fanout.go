// Package fanout runs independent tasks concurrently and collects result or error of each one.
// A failing task never cancels its siblings.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is a single unit of work.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes tasks concurrently, at most limit at once (limit <= 0 means no limit).
// Returned results are in the same order as tasks. Panics are converted into task errors.
// Blocks until all tasks finish.
func Run[T any](ctx context.Context, limit int, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = runOne(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runOne[T any](ctx context.Context, task Task[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("task panicked: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result[T]{Err: err}
	}
	v, err := task(ctx)

	return Result[T]{Value: v, Err: err}
}
