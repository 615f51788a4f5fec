package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Group owns a set of worker goroutines sharing one context. The first
// worker to fail cancels that context for all of them.
type Group struct {
	g   *errgroup.Group
	ctx context.Context
	log *slog.Logger
}

// NewGroup returns a Group and the context its workers run with.
func NewGroup(ctx context.Context) (*Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{
		g:   g,
		ctx: gctx,
		log: slog.With("component", "worker"),
	}, gctx
}

// Go starts task on a new goroutine owned by the group.
func (g *Group) Go(name string, task Task) {
	log := g.log.With("worker", name)
	g.g.Go(func() error {
		log.Debug("worker started")
		err := call(g.ctx, name, task)
		logExit(log, err)
		return err
	})
}

// Wait blocks until every worker has exited and returns the first error.
func (g *Group) Wait() error {
	return g.g.Wait()
}
