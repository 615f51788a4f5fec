// Command framequeue moves the contents of one or more input files through a
// bounded producer/consumer pipeline into one output file.
//
// Each input is read by its own producer in fixed-size frames; a single
// consumer appends the frames to the output as they arrive. With one input
// the output is a byte-exact copy.
//
// Usage:
//
//	go run ./cmd/framequeue -out out.yuv -frame-size 3110400 -capacity 8 in.yuv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/randomizedcoder/framequeue/internal/pipeline"
	"github.com/randomizedcoder/framequeue/internal/progress"
)

var version = "dev"

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		slog.Error("framequeue failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	out := flag.String("out", "", "output file (required)")
	frameSize := flag.Int("frame-size", envInt("FRAMEQUEUE_FRAME_SIZE", 1<<20), "bytes per frame")
	capacity := flag.Int("capacity", envInt("FRAMEQUEUE_CAPACITY", pipeline.DefaultCapacity), "frames in flight between readers and writer")
	interval := flag.Duration("progress", progress.DefaultInterval, "progress log interval")
	every := flag.Int("progress-every", 1, "check the progress clock every N frames")
	flag.Parse()

	if *out == "" || flag.NArg() == 0 {
		flag.Usage()
		return errors.New("need -out and at least one input file")
	}
	if *frameSize < 1 {
		return fmt.Errorf("frame size must be positive, got %d", *frameSize)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	sources := make([]pipeline.Source, 0, flag.NArg())
	for _, name := range flag.Args() {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		sources = append(sources, pipeline.NewChunkSource(f, *frameSize))
	}

	dst, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer dst.Close()
	sink := pipeline.NewWriterSink(dst)

	var ticker progress.Ticker = progress.NewAtomicTicker(*interval)
	if *every > 1 {
		ticker = progress.NewBatch(*interval, *every)
	}

	p, err := pipeline.New(pipeline.Config{
		Capacity: *capacity,
		Logger:   slog.Default(),
		Ticker:   ticker,
	}, sink, sources...)
	if err != nil {
		return err
	}

	slog.Info("framequeue starting",
		"version", version,
		"inputs", flag.NArg(),
		"out", *out,
		"frame_size", *frameSize,
		"capacity", *capacity,
	)

	stats, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if err := dst.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}

	printStats(os.Stdout, stats, sink.Written())
	return nil
}

func printStats(w io.Writer, stats pipeline.Stats, written int64) {
	secs := stats.Elapsed.Seconds()
	fmt.Fprintf(w, "\nResults:\n")
	for i, s := range stats.Sources {
		fmt.Fprintf(w, "  input %-3d %10d frames %14d bytes\n", i, s.Frames, s.Bytes)
	}
	fmt.Fprintf(w, "  output    %10d frames %14d bytes\n", stats.Frames, written)
	fmt.Fprintf(w, "  elapsed   %v\n", stats.Elapsed.Round(time.Millisecond))
	if secs > 0 {
		fmt.Fprintf(w, "  rate      %.2f frames/s, %.2f MB/s\n",
			float64(stats.Frames)/secs, float64(stats.Bytes)/1e6/secs)
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid env value", "key", key, "value", v)
		return fallback
	}
	return n
}
