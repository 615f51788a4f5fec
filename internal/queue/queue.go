// Package queue provides bounded hand-off queues for producer/consumer
// pipelines.
//
// The package offers three implementations:
//   - Bounded: mutex + condition variables, blocking Push/Pop, resizable bound
//   - ChannelQueue: standard library approach using a buffered channel
//   - Sharded: lock-free multi-producer single-consumer ring (non-blocking)
//
// # Bounded Liveness (IMPORTANT)
//
// Bounded never returns an error and never gives up waiting. Every blocked
// call is unblocked only by a counterpart operation on another goroutine:
//   - Push parks while Len() >= Cap(); Pop, TryPop or a growing SetCap wakes it
//   - Pop and Front park while the queue is empty; Push or TryPush wakes them
//   - Clear empties the queue WITHOUT waking anybody
//
// A zero capacity (the zero value, or NewBounded(0)) makes every Push block
// until SetCap raises the bound. Shutdown must be arranged by the caller,
// typically by pushing a sentinel item that tells consumers to stop.
package queue

// Queue is a blocking first-in first-out hand-off queue.
type Queue[T any] interface {
	// Push appends an item, blocking while the queue is full.
	Push(T)

	// Pop removes and returns the oldest item, blocking while the queue is empty.
	Pop() T

	// Len returns the current number of items in the queue.
	Len() int
}

// TryQueue is the non-blocking form of Queue.
//
// TryPush returns false if the queue is full,
// TryPop returns false if the queue is empty.
type TryQueue[T any] interface {
	TryPush(T) bool
	TryPop() (T, bool)
}
