package queue_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/framequeue/internal/queue"
)

// TestBounded_SPSC_FIFO tests the single-producer single-consumer law:
// the popped sequence equals the pushed sequence.
func TestBounded_SPSC_FIFO(t *testing.T) {
	q := queue.NewBounded[int](64)
	count := 10000
	done := make(chan struct{})

	// Producer (single goroutine)
	go func() {
		for i := 0; i < count; i++ {
			q.Push(i)
		}
		close(done)
	}()

	// Consumer (single goroutine - this test's main goroutine)
	for expected := 0; expected < count; expected++ {
		if val := q.Pop(); val != expected {
			t.Fatalf("FIFO violation: expected %d, got %d", expected, val)
		}
	}

	<-done // Wait for producer

	if q.Len() != 0 {
		t.Errorf("expected empty queue, Len() = %d", q.Len())
	}
}

// TestBounded_TwoProducersCapacityOne: two producers each push 50 distinct
// integers through a single-slot queue; one consumer receives exactly {0..99}.
func TestBounded_TwoProducersCapacityOne(t *testing.T) {
	q := queue.NewBounded[int](1)

	var wg sync.WaitGroup
	for p := 0; p < 2; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Push(base + i)
			}
		}(p * 50)
	}

	seen := make(map[int]bool, 100)
	for i := 0; i < 100; i++ {
		v := q.Pop()
		if seen[v] {
			t.Errorf("duplicate value %d", v)
		}
		seen[v] = true
	}
	wg.Wait()

	for v := 0; v < 100; v++ {
		if !seen[v] {
			t.Errorf("missing value %d", v)
		}
	}
}

// TestBounded_MPMC_NoLossNoDup runs K producers and C consumers against one
// queue. Every pushed value must be popped exactly once, and each producer's
// values must reach any single consumer in the order they were pushed.
func TestBounded_MPMC_NoLossNoDup(t *testing.T) {
	const (
		producers = 8
		consumers = 4
		perProd   = 2000
		total     = producers * perProd
	)
	q := queue.NewBounded[int](16)

	var prodWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		prodWG.Add(1)
		go func(p int) {
			defer prodWG.Done()
			for i := 0; i < perProd; i++ {
				q.Push(p*perProd + i)
			}
		}(p)
	}

	var remaining atomic.Int64
	remaining.Store(total)
	results := make([][]int, consumers)

	var consWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consWG.Add(1)
		go func(c int) {
			defer consWG.Done()
			for remaining.Add(-1) >= 0 {
				results[c] = append(results[c], q.Pop())
			}
		}(c)
	}

	prodWG.Wait()
	consWG.Wait()

	counts := make([]int, total)
	for c, vals := range results {
		last := make([]int, producers)
		for i := range last {
			last[i] = -1
		}
		for _, v := range vals {
			counts[v]++
			p, seq := v/perProd, v%perProd
			if seq <= last[p] {
				t.Errorf("consumer %d: producer %d order violation: %d after %d", c, p, seq, last[p])
			}
			last[p] = seq
		}
	}
	for v, n := range counts {
		if n != 1 {
			t.Errorf("value %d popped %d times", v, n)
		}
	}
}

// TestBounded_NeverExceedsCap samples Len() while many producers push.
// Run with: go test -race ./internal/queue
func TestBounded_NeverExceedsCap(t *testing.T) {
	const capacity = 4
	q := queue.NewBounded[int](capacity)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for p := 0; p < 6; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				q.Push(j)
			}
		}()
	}

	var sampler sync.WaitGroup
	sampler.Add(1)
	go func() {
		defer sampler.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if n := q.Len(); n > capacity {
				t.Errorf("Len() = %d exceeds capacity %d", n, capacity)
				return
			}
		}
	}()

	for i := 0; i < 6000; i++ {
		q.Pop()
	}
	wg.Wait()
	close(stop)
	sampler.Wait()
}

// TestSharded_MPSC tests the valid MPSC pattern: several producers with
// distinct IDs, one consumer.
func TestSharded_MPSC(t *testing.T) {
	const (
		producers = 4
		perProd   = 1000
	)
	q, err := queue.NewSharded[int](1024, producers)
	if err != nil {
		t.Fatalf("NewSharded: %v", err)
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				for !q.Push(uint64(p), p*perProd+i) {
					// Spin until push succeeds
				}
			}
		}(p)
	}

	seen := make(map[int]bool, producers*perProd)
	for len(seen) < producers*perProd {
		v, ok := q.Pop()
		if !ok {
			continue
		}
		if seen[v] {
			t.Fatalf("duplicate value %d", v)
		}
		seen[v] = true
	}
	wg.Wait()

	if _, ok := q.Pop(); ok {
		t.Error("expected Pop() = false after draining")
	}
}

func TestSharded_BadArgs(t *testing.T) {
	if _, err := queue.NewSharded[int](0, 1); err == nil {
		t.Error("expected error for capacity 0")
	}
	if _, err := queue.NewSharded[int](8, 0); err == nil {
		t.Error("expected error for 0 shards")
	}
}
