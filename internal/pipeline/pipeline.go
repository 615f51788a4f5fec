package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/framequeue/internal/progress"
	"github.com/randomizedcoder/framequeue/internal/queue"
	"github.com/randomizedcoder/framequeue/internal/worker"
)

var (
	// ErrNoSources is returned by New when no Source is given.
	ErrNoSources = errors.New("pipeline: no sources")

	// ErrNoSink is returned by New when the Sink is nil.
	ErrNoSink = errors.New("pipeline: no sink")

	// ErrBadCapacity is returned by New for a negative Config.Capacity.
	ErrBadCapacity = errors.New("pipeline: queue capacity must be at least 1")

	// ErrAlreadyRun is returned by every Run call after the first.
	ErrAlreadyRun = errors.New("pipeline: already run")
)

// DefaultCapacity is the queue bound used when Config.Capacity is 0.
const DefaultCapacity = 16

// Config tunes a Pipeline. The zero value is usable.
type Config struct {
	// Capacity bounds the frames in flight between producers and consumer.
	Capacity int

	Logger *slog.Logger

	// Ticker paces progress log lines; nil means progress.DefaultInterval.
	Ticker progress.Ticker
}

// SourceStats counts what one producer read.
type SourceStats struct {
	Frames uint64
	Bytes  uint64
}

// Stats summarises a Run.
type Stats struct {
	Sources []SourceStats
	Frames  uint64 // frames written to the sink
	Bytes   uint64 // bytes written to the sink
	Elapsed time.Duration
}

// Pipeline moves frames from its sources to its sink. A Pipeline runs once;
// later Run calls fail with ErrAlreadyRun.
type Pipeline struct {
	log     *slog.Logger
	sink    Sink
	sources []Source
	q       *queue.Bounded[Frame]
	meter   *progress.Meter
	ran     atomic.Bool
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, sink Sink, sources ...Source) (*Pipeline, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if sink == nil {
		return nil, ErrNoSink
	}
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrBadCapacity, capacity)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "pipeline")

	return &Pipeline{
		log:     log,
		sink:    sink,
		sources: sources,
		q:       queue.NewBounded[Frame](capacity),
		meter:   progress.NewMeter(log, cfg.Ticker),
	}, nil
}

// Depth returns the number of frames waiting in the queue.
func (p *Pipeline) Depth() int {
	return p.q.Len()
}

// Run drains every source into the sink and blocks until all producer and
// consumer goroutines have exited.
//
// A sink error cancels the producers; the consumer keeps draining the queue
// until every producer has delivered its end-of-stream frame, so no producer
// is left parked on a full queue. The sink error is returned in preference
// to the cancellation errors it caused.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return Stats{}, ErrAlreadyRun
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.log.Info("pipeline starting", "sources", len(p.sources), "capacity", p.q.Cap())
	stats := Stats{Sources: make([]SourceStats, len(p.sources))}

	consumer := worker.Start(ctx, "consumer", func(context.Context) error {
		return p.consume(cancel)
	})
	defer consumer.Join()

	g, _ := worker.NewGroup(ctx)
	for i, src := range p.sources {
		g.Go(fmt.Sprintf("producer-%d", i), func(ctx context.Context) error {
			return p.produce(ctx, i, src, &stats.Sources[i])
		})
	}

	prodErr := g.Wait()
	consErr := consumer.Join()

	snap := p.meter.Snapshot()
	stats.Frames = snap.Frames
	stats.Bytes = snap.Bytes
	stats.Elapsed = snap.Elapsed
	p.meter.Report("pipeline finished")

	switch {
	case consErr != nil:
		return stats, consErr
	case prodErr != nil:
		return stats, prodErr
	}
	return stats, nil
}

// produce reads src until EOF, cancellation or error. It always finishes by
// pushing the source's end-of-stream frame, even while unwinding a panic.
func (p *Pipeline) produce(ctx context.Context, id int, src Source, st *SourceStats) error {
	defer p.q.Push(endOfStream(id))

	for seq := uint64(0); ; seq++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := src.Next()
		if errors.Is(err, io.EOF) {
			p.log.Debug("source drained", "source", id, "frames", st.Frames)
			return nil
		}
		if err != nil {
			return fmt.Errorf("pipeline: source %d: %w", id, err)
		}
		p.q.Push(Frame{Source: id, Seq: seq, Data: data})
		st.Frames++
		st.Bytes += uint64(len(data))
	}
}

// consume pops frames until one end-of-stream frame per source has arrived.
func (p *Pipeline) consume(stop context.CancelFunc) error {
	var sinkErr error
	for open := len(p.sources); open > 0; {
		f := p.q.Pop()
		if f.EOS {
			open--
			continue
		}
		if sinkErr != nil {
			continue
		}
		if err := p.write(f); err != nil {
			sinkErr = fmt.Errorf("pipeline: sink: %w", err)
			p.log.Error("sink failed, draining queue", "error", err, "source", f.Source, "seq", f.Seq)
			stop()
			continue
		}
		p.meter.Add(1, len(f.Data))
	}
	return sinkErr
}

// write calls the sink, turning a panic into an error so the consumer can
// keep draining.
func (p *Pipeline) write(f Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.sink.Write(f)
}
