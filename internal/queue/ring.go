package queue

// maxInitialSlots caps the storage allocated up front, so a huge bound does
// not cost memory until items actually arrive.
const maxInitialSlots = 1024

// ring is the FIFO storage behind Bounded.
//
// It is NOT safe for concurrent use; Bounded guards it with its mutex.
// The slot count is always a power of 2 and doubles when the ring is full,
// so pushBack and popFront are O(1) amortized.
type ring[T any] struct {
	buf  []T
	mask uint64
	head uint64 // next slot to write
	tail uint64 // next slot to read
}

// newRing creates a ring with room for size items before it has to grow.
// Size is rounded up to the next power of 2.
func newRing[T any](size int) ring[T] {
	if size <= 0 {
		return ring[T]{}
	}
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}
	return ring[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

func (r *ring[T]) len() int {
	return int(r.head - r.tail)
}

func (r *ring[T]) pushBack(v T) {
	if r.head-r.tail >= uint64(len(r.buf)) {
		r.grow()
	}
	r.buf[r.head&r.mask] = v
	r.head++
}

// popFront removes the oldest item. The ring must not be empty.
func (r *ring[T]) popFront() T {
	var zero T
	i := r.tail & r.mask
	v := r.buf[i]
	r.buf[i] = zero // drop the reference so the payload can be collected
	r.tail++
	return v
}

// front returns the oldest item without removing it. The ring must not be empty.
func (r *ring[T]) front() T {
	return r.buf[r.tail&r.mask]
}

func (r *ring[T]) grow() {
	n := uint64(len(r.buf)) << 1
	if n == 0 {
		n = 1
	}
	buf := make([]T, n)
	count := r.head - r.tail
	for i := uint64(0); i < count; i++ {
		buf[i] = r.buf[(r.tail+i)&r.mask]
	}
	r.buf = buf
	r.mask = n - 1
	r.tail = 0
	r.head = count
}

// reset drops every item but keeps the allocated slots.
func (r *ring[T]) reset() {
	clear(r.buf)
	r.head = 0
	r.tail = 0
}
