package queue

import "sync"

// Bounded is a blocking FIFO queue holding at most Cap() items.
//
// It is safe for any number of producers and consumers. All state is guarded
// by one mutex; producers park on a "not full" condition and consumers on a
// "not empty" condition. Each successful Push wakes at most one parked
// consumer and each successful Pop wakes at most one parked producer. A woken
// goroutine always re-checks its condition before proceeding, since another
// goroutine may have taken the slot or item first.
//
// The zero value is an empty queue with capacity 0. See the package
// documentation for the liveness rules.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond
	items    ring[T]
	capacity int

	// parked goroutines per condition, so wake-ups are only issued when
	// somebody can use them
	pushWaiters int
	popWaiters  int
}

// NewBounded creates an empty Bounded queue that holds at most capacity items.
//
// A capacity <= 0 is accepted and makes the queue permanently full until
// SetCap is called.
func NewBounded[T any](capacity int) *Bounded[T] {
	q := &Bounded[T]{
		items:    newRing[T](min(capacity, maxInitialSlots)),
		capacity: capacity,
	}
	q.notFull.L = &q.mu
	q.notEmpty.L = &q.mu
	return q
}

// lock acquires the mutex and binds the conditions for zero-value queues.
func (q *Bounded[T]) lock() {
	q.mu.Lock()
	if q.notFull.L == nil {
		q.notFull.L = &q.mu
		q.notEmpty.L = &q.mu
	}
}

func (q *Bounded[T]) full() bool {
	return q.items.len() >= q.capacity
}

// Push appends v to the tail of the queue, blocking while the queue is full.
func (q *Bounded[T]) Push(v T) {
	q.lock()
	for q.full() {
		q.pushWaiters++
		q.notFull.Wait()
		q.pushWaiters--
	}
	q.items.pushBack(v)
	wake := q.popWaiters > 0
	q.mu.Unlock()

	if wake {
		q.notEmpty.Signal()
	}
}

// TryPush appends v if there is room.
// Returns false if the queue is full (non-blocking).
func (q *Bounded[T]) TryPush(v T) bool {
	q.lock()
	if q.full() {
		q.mu.Unlock()
		return false
	}
	q.items.pushBack(v)
	wake := q.popWaiters > 0
	q.mu.Unlock()

	if wake {
		q.notEmpty.Signal()
	}
	return true
}

// Pop removes and returns the head of the queue, blocking while it is empty.
func (q *Bounded[T]) Pop() T {
	q.lock()
	for q.items.len() == 0 {
		q.popWaiters++
		q.notEmpty.Wait()
		q.popWaiters--
	}
	v := q.items.popFront()
	wake := q.pushWaiters > 0 && !q.full()
	q.mu.Unlock()

	if wake {
		q.notFull.Signal()
	}
	return v
}

// TryPop removes and returns the head of the queue.
// Returns false if the queue is empty (non-blocking).
func (q *Bounded[T]) TryPop() (T, bool) {
	q.lock()
	if q.items.len() == 0 {
		q.mu.Unlock()
		var zero T
		return zero, false
	}
	v := q.items.popFront()
	wake := q.pushWaiters > 0 && !q.full()
	q.mu.Unlock()

	if wake {
		q.notFull.Signal()
	}
	return v, true
}

// Front returns the head of the queue without removing it, blocking while
// the queue is empty.
func (q *Bounded[T]) Front() T {
	q.lock()
	for q.items.len() == 0 {
		q.popWaiters++
		q.notEmpty.Wait()
		q.popWaiters--
	}
	v := q.items.front()
	// Front may have used a wake-up meant for a Pop; the item is still
	// there, so hand the wake-up on.
	wake := q.popWaiters > 0
	q.mu.Unlock()

	if wake {
		q.notEmpty.Signal()
	}
	return v
}

// Len returns the number of items at the instant of the call.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.len()
}

// Empty reports whether the queue held no items at the instant of the call.
func (q *Bounded[T]) Empty() bool {
	return q.Len() == 0
}

// Cap returns the current bound.
func (q *Bounded[T]) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.capacity
}

// SetCap changes the bound used by subsequent Push calls.
//
// Items already queued are never evicted, even if Len() exceeds the new
// bound. Raising the bound wakes every parked Push so each can re-check.
func (q *Bounded[T]) SetCap(capacity int) {
	q.lock()
	grew := capacity > q.capacity
	q.capacity = capacity
	wake := grew && q.pushWaiters > 0
	q.mu.Unlock()

	if wake {
		q.notFull.Broadcast()
	}
}

// Clear removes every item.
//
// Clear does NOT wake goroutines parked in Push, Pop or Front. A parked
// Push stays parked until the next Pop; a parked Pop until the next Push.
// Do not rely on Clear to break a producer/consumer deadlock.
func (q *Bounded[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items.reset()
}
