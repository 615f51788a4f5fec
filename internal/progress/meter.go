package progress

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time view of a Meter.
type Snapshot struct {
	Frames  uint64
	Bytes   uint64
	Elapsed time.Duration
}

// FramesPerSec returns the average frame rate over the whole run.
func (s Snapshot) FramesPerSec() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// MBPerSec returns the average throughput in MB/s over the whole run.
func (s Snapshot) MBPerSec() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Bytes) / 1e6 / s.Elapsed.Seconds()
}

// Meter counts frames and bytes and logs progress whenever its ticker fires.
//
// Add is meant to be called from one consumer loop. Snapshot may be called
// from any goroutine.
type Meter struct {
	log    *slog.Logger
	ticker Ticker
	start  int64

	frames atomic.Uint64
	bytes  atomic.Uint64
}

// NewMeter creates a Meter. A nil ticker means an AtomicTicker with
// DefaultInterval; a nil logger means slog.Default().
func NewMeter(log *slog.Logger, ticker Ticker) *Meter {
	if log == nil {
		log = slog.Default()
	}
	if ticker == nil {
		ticker = NewAtomicTicker(DefaultInterval)
	}
	return &Meter{
		log:    log,
		ticker: ticker,
		start:  nanotime(),
	}
}

// Add records frames and bytes, logging a progress line if the ticker fired.
func (m *Meter) Add(frames, bytes int) {
	m.frames.Add(uint64(frames))
	m.bytes.Add(uint64(bytes))
	if m.ticker.Tick() {
		m.Report("progress")
	}
}

// Report logs the current totals and averages under msg.
func (m *Meter) Report(msg string) {
	s := m.Snapshot()
	m.log.Info(msg,
		"frames", s.Frames,
		"bytes", s.Bytes,
		"elapsed", s.Elapsed.Round(time.Millisecond),
		"fps", round2(s.FramesPerSec()),
		"mb_per_sec", round2(s.MBPerSec()),
	)
}

// Snapshot returns the totals counted so far.
func (m *Meter) Snapshot() Snapshot {
	return Snapshot{
		Frames:  m.frames.Load(),
		Bytes:   m.bytes.Load(),
		Elapsed: time.Duration(nanotime() - m.start),
	}
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
