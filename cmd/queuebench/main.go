// Command queuebench measures producer-to-consumer hand-off throughput of
// the queue implementations.
//
// Usage:
//
//	go run ./cmd/queuebench -n 10000000 -producers 4 -capacity 1024
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/randomizedcoder/framequeue/internal/queue"
	"github.com/randomizedcoder/framequeue/internal/worker"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "items per run")
	producers := flag.Int("producers", 4, "producer goroutines")
	capacity := flag.Int("capacity", 1024, "queue capacity")
	flag.Parse()

	if *producers < 1 || *capacity < 1 || *iterations < *producers {
		fmt.Fprintln(os.Stderr, "need producers >= 1, capacity >= 1, n >= producers")
		os.Exit(2)
	}
	per := *iterations / *producers
	total := per * *producers

	fmt.Printf("Benchmarking MPSC hand-off (%d items, producers=%d, capacity=%d)\n", total, *producers, *capacity)
	fmt.Printf("Architecture: %s/%s, GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
	fmt.Println("─────────────────────────────────────────────────")

	type result struct {
		name string
		dur  time.Duration
		err  error
	}
	results := []result{
		{name: "Bounded"},
		{name: "Channel"},
		{name: "Sharded"},
	}
	results[0].dur, results[0].err = runBlocking(queue.NewBounded[int](*capacity), *producers, per)
	results[1].dur, results[1].err = runBlocking(queue.NewChannel[int](*capacity), *producers, per)
	results[2].dur, results[2].err = runSharded(*capacity, *producers, per)

	fmt.Printf("\nResults (push + pop per item):\n")
	baseline := float64(results[1].dur.Nanoseconds()) / float64(total)
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("  %-10s error: %v\n", r.name, r.err)
			continue
		}
		perOp := float64(r.dur.Nanoseconds()) / float64(total)
		fmt.Printf("  %-10s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			r.name, r.dur, perOp, baseline/perOp, 1000/perOp)
	}
	fmt.Printf("\nNote: speedup is relative to Channel.\n")
}

// runBlocking fans producers into q and pops every item on one consumer.
func runBlocking(q queue.Queue[int], producers, per int) (time.Duration, error) {
	total := producers * per
	start := time.Now()

	consumer := worker.Start(context.Background(), "consumer", func(context.Context) error {
		for i := 0; i < total; i++ {
			q.Pop()
		}
		return nil
	})
	defer consumer.Join()

	g, _ := worker.NewGroup(context.Background())
	for p := 0; p < producers; p++ {
		g.Go(fmt.Sprintf("producer-%d", p), func(context.Context) error {
			for i := 0; i < per; i++ {
				q.Push(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := consumer.Join(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// runSharded is runBlocking for the lock-free ring: producers spin on a full
// shard and the consumer spins on an empty ring.
func runSharded(capacity, producers, per int) (time.Duration, error) {
	shards := producers
	if capacity < shards {
		capacity = shards
	}
	q, err := queue.NewSharded[int](capacity, shards)
	if err != nil {
		return 0, err
	}
	total := producers * per
	start := time.Now()

	consumer := worker.Start(context.Background(), "consumer", func(context.Context) error {
		for got := 0; got < total; {
			if _, ok := q.Pop(); ok {
				got++
			}
		}
		return nil
	})
	defer consumer.Join()

	g, _ := worker.NewGroup(context.Background())
	for p := 0; p < producers; p++ {
		g.Go(fmt.Sprintf("producer-%d", p), func(context.Context) error {
			for i := 0; i < per; i++ {
				for !q.Push(uint64(p), i) {
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := consumer.Join(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
