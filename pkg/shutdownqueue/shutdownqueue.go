// Package shutdownqueue keeps a process-wide list of named cleanup tasks
// that are drained in reverse registration order when the process stops.
//
// Components register their cleanup right after they are started:
//
//	pool := openPool()
//	shutdownqueue.Add("postgres pool", func(context.Context) error {
//		pool.Close()
//		return nil
//	})
//
// and main drains the queue once, with a deadline, on its way out.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a cleanup function. It should stop early when ctx is done.
type Task func(ctx context.Context) error

type entry struct {
	name string
	task Task
}

type queue struct {
	mu      sync.Mutex
	entries []entry
	drained bool
}

var q = &queue{entries: make([]entry, 0, 8)}

// Add registers a named task. Nil tasks and tasks added once draining has
// started are ignored.
func Add(name string, t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.drained {
		slog.Warn("shutdown task registered after drain started", "task", name)

		return
	}

	q.entries = append(q.entries, entry{name: name, task: t})
}

// Shutdown runs every registered task exactly once, last registered first.
// Task errors and recovered panics are joined into the returned error, each
// prefixed with the task name. When ctx ends mid-drain the remaining tasks
// are skipped and ctx.Err() is part of the result.
// Calls after the first one return nil.
func Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.drained {
		q.mu.Unlock()

		return nil
	}

	q.drained = true
	entries := q.entries
	q.entries = nil

	q.mu.Unlock()

	var errs []error

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]

		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown interrupted before %q: %w", e.name, ctx.Err()))

			break
		}

		started := time.Now()

		err := runTask(ctx, e)
		if err != nil {
			slog.Error("shutdown task failed", "task", e.name, "error", err)
			errs = append(errs, err)

			continue
		}

		slog.Info("shutdown task done", "task", e.name, "took", time.Since(started))
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, e entry) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("%s: panic: %v", e.name, r)
		}
	}()

	err = e.task(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", e.name, err)
	}

	return nil
}
