package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/framequeue/internal/worker"
)

func TestGroup_WaitAll(t *testing.T) {
	t.Parallel()

	g, _ := worker.NewGroup(context.Background())
	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		g.Go("w", func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if ran.Load() != 5 {
		t.Errorf("expected 5 workers to run, got %d", ran.Load())
	}
}

func TestGroup_FirstErrorCancels(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	g, ctx := worker.NewGroup(context.Background())

	g.Go("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	g.Go("failer", func(context.Context) error {
		return errBoom
	})

	if err := g.Wait(); !errors.Is(err, errBoom) {
		t.Errorf("expected %v, got %v", errBoom, err)
	}
	if ctx.Err() == nil {
		t.Error("expected group context to be cancelled")
	}
}

func TestGroup_Panic(t *testing.T) {
	t.Parallel()

	g, _ := worker.NewGroup(context.Background())
	g.Go("crasher", func(context.Context) error {
		panic(42)
	})

	var pe *worker.PanicError
	if err := g.Wait(); !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if pe.Value != 42 {
		t.Errorf("expected panic value 42, got %v", pe.Value)
	}
}
