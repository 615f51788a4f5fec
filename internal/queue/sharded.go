package queue

import (
	"fmt"

	lfring "github.com/randomizedcoder/go-lock-free-ring"
)

// Sharded is a lock-free MPSC (Multi-Producer Single-Consumer) queue backed
// by a sharded ring. Each producer writes to its own shard, picked by the
// producer ID, so producers do not contend with each other.
//
// Push and Pop are non-blocking. Ordering is FIFO per producer only; items
// from different producers may interleave in any order.
//
// WARNING: Only ONE goroutine may call Pop().
type Sharded[T any] struct {
	r *lfring.ShardedRing
}

// NewSharded creates a Sharded queue with room for capacity items spread
// over the given number of shards.
func NewSharded[T any](capacity, shards int) (*Sharded[T], error) {
	if capacity < 1 || shards < 1 {
		return nil, fmt.Errorf("queue: sharded ring needs capacity and shards >= 1, got %d/%d", capacity, shards)
	}
	r, err := lfring.NewShardedRing(uint64(capacity), uint64(shards))
	if err != nil {
		return nil, fmt.Errorf("queue: sharded ring: %w", err)
	}
	return &Sharded[T]{r: r}, nil
}

// Push adds an item on behalf of the given producer.
// Returns false if that producer's shard is full.
func (s *Sharded[T]) Push(producer uint64, v T) bool {
	return s.r.Write(producer, v)
}

// Pop removes and returns an item from any shard.
// Returns false if every shard is empty.
func (s *Sharded[T]) Pop() (T, bool) {
	var zero T
	v, ok := s.r.TryRead()
	if !ok {
		return zero, false
	}
	item, ok := v.(T)
	if !ok {
		return zero, false
	}
	return item, true
}
