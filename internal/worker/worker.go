// Package worker owns background goroutines and guarantees they are waited for.
//
// A Handle owns exactly one goroutine. Join blocks until it has exited and
// reports its error; the usual pattern ties the goroutine's lifetime to a
// scope:
//
//	h := worker.Start(ctx, "consumer", consume)
//	defer h.Join()
//
// Handles are movable (Move) but must not be copied. A Group owns several
// goroutines that share one context and fail together.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Task is the body of a worker goroutine. It should return once ctx is done.
type Task func(ctx context.Context) error

// PanicError reports a panic recovered from a Task.
type PanicError struct {
	Worker string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %s: panic: %v", e.Worker, e.Value)
}

// call runs fn, converting a panic into a *PanicError.
func call(ctx context.Context, name string, fn Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Worker: name, Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(ctx)
}

func logExit(log *slog.Logger, err error) {
	if err != nil {
		log.Debug("worker exited", "error", err)
		return
	}
	log.Debug("worker exited")
}
