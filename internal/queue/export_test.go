package queue

// slots returns the number of allocated slots.
func (r *ring[T]) slots() int {
	return len(r.buf)
}
