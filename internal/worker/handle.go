package worker

import (
	"context"
	"log/slog"
	"sync"
)

// run is one goroutine's shared state; a Handle points at it until joined.
type run struct {
	name   string
	done   <-chan struct{}
	cancel context.CancelFunc
	err    error // written before done is closed
}

// Handle owns one goroutine. The zero value is an empty handle.
//
// Handle contains a mutex; go vet reports copies. Use Move to hand
// ownership to another handle.
type Handle struct {
	mu sync.Mutex
	r  *run
}

// Start runs task on a new goroutine and returns the handle that owns it.
//
// The task receives a context derived from ctx that Stop cancels.
func Start(ctx context.Context, name string, task Task) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r := &run{name: name, done: done, cancel: cancel}
	log := slog.With("component", "worker", "worker", name)

	go func() {
		defer close(done)
		defer cancel()
		log.Debug("worker started")
		r.err = call(ctx, name, task)
		logExit(log, r.err)
	}()

	return &Handle{r: r}
}

// Wrap takes ownership of a goroutine that is already running and closes
// done when it exits. A nil done yields an empty handle.
func Wrap(done <-chan struct{}) *Handle {
	if done == nil {
		return &Handle{}
	}
	return &Handle{r: &run{done: done}}
}

// Move transfers ownership to a new handle and leaves h empty.
func (h *Handle) Move() *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.r
	h.r = nil
	return &Handle{r: r}
}

// Join blocks until the owned goroutine has exited, then empties the handle
// and returns the task's error. Join on an empty handle returns nil at once.
//
// Join has no timeout; it waits as long as the goroutine runs.
func (h *Handle) Join() error {
	h.mu.Lock()
	r := h.r
	h.mu.Unlock()

	if r == nil {
		return nil
	}
	<-r.done

	h.mu.Lock()
	if h.r == r {
		h.r = nil
	}
	h.mu.Unlock()

	return r.err
}

// Stop cancels the context of a task started with Start. It does not wait;
// call Join for that. Stop is a no-op on empty or wrapped handles.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.r != nil && h.r.cancel != nil {
		h.r.cancel()
	}
}

// Joinable reports whether h still owns a goroutine.
func (h *Handle) Joinable() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.r != nil
}

// Done returns a channel closed when the owned goroutine exits, or nil for
// an empty handle.
func (h *Handle) Done() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.r == nil {
		return nil
	}
	return h.r.done
}

// Name returns the name given to Start, or "" for wrapped and empty handles.
func (h *Handle) Name() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.r == nil {
		return ""
	}
	return h.r.name
}
