package progress_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/randomizedcoder/framequeue/internal/progress"
)

func TestAtomicTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := progress.NewAtomicTicker(interval)

	// Should not tick immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}

	// Wait for interval + buffer
	time.Sleep(interval + 20*time.Millisecond)

	// Should tick now
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}

	// Should not tick again immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after tick")
	}
	if ticker.Interval() != interval {
		t.Errorf("expected Interval() = %v, got %v", interval, ticker.Interval())
	}
}

func TestAtomicTicker_Reset(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := progress.NewAtomicTicker(interval)

	time.Sleep(interval + 20*time.Millisecond)
	ticker.Reset()

	// Should not tick immediately after reset
	if ticker.Tick() {
		t.Error("expected Tick() = false after Reset()")
	}
}

// TestAtomicTicker_Race checks that one elapsed interval fires one tick
// across concurrent pollers.
// Run with: go test -race ./internal/progress
func TestAtomicTicker_Race(t *testing.T) {
	interval := 30 * time.Millisecond
	ticker := progress.NewAtomicTicker(interval)
	time.Sleep(interval + 10*time.Millisecond)

	var mu sync.Mutex
	fired := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if ticker.Tick() {
					mu.Lock()
					fired++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if fired != 1 {
		t.Errorf("expected exactly 1 tick, got %d", fired)
	}
}

func TestBatchTicker(t *testing.T) {
	interval := 10 * time.Millisecond
	ticker := progress.NewBatch(interval, 5)

	time.Sleep(interval + 10*time.Millisecond)

	// First 4 calls skip the clock
	for i := 0; i < 4; i++ {
		if ticker.Tick() {
			t.Errorf("expected Tick() = false on call %d", i+1)
		}
	}

	// 5th call checks the clock
	if !ticker.Tick() {
		t.Error("expected Tick() = true on 5th call after interval")
	}
}

func TestBatchTicker_MinEvery(t *testing.T) {
	ticker := progress.NewBatch(time.Hour, 0)
	if ticker.Every() != 1 {
		t.Errorf("expected Every() = 1, got %d", ticker.Every())
	}
}

// manualTicker fires when told to.
type manualTicker struct{ fire bool }

func (m *manualTicker) Tick() bool {
	f := m.fire
	m.fire = false
	return f
}

func (m *manualTicker) Reset() {}

func TestMeter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	tk := &manualTicker{}
	m := progress.NewMeter(log, tk)

	m.Add(1, 100)
	m.Add(2, 50)
	if buf.Len() != 0 {
		t.Errorf("expected no log output before a tick, got %q", buf.String())
	}

	tk.fire = true
	m.Add(1, 10)

	out := buf.String()
	if !strings.Contains(out, "msg=progress") {
		t.Errorf("expected a progress line, got %q", out)
	}
	if !strings.Contains(out, "frames=4") || !strings.Contains(out, "bytes=160") {
		t.Errorf("expected totals in progress line, got %q", out)
	}

	s := m.Snapshot()
	if s.Frames != 4 || s.Bytes != 160 {
		t.Errorf("expected 4 frames / 160 bytes, got %d / %d", s.Frames, s.Bytes)
	}
	if s.Elapsed <= 0 {
		t.Errorf("expected positive elapsed, got %v", s.Elapsed)
	}
}

func TestSnapshot_Rates(t *testing.T) {
	s := progress.Snapshot{Frames: 50, Bytes: 2e6, Elapsed: 2 * time.Second}
	if got := s.FramesPerSec(); got != 25 {
		t.Errorf("expected 25 fps, got %v", got)
	}
	if got := s.MBPerSec(); got != 1 {
		t.Errorf("expected 1 MB/s, got %v", got)
	}

	var zero progress.Snapshot
	if zero.FramesPerSec() != 0 || zero.MBPerSec() != 0 {
		t.Error("expected zero rates for zero elapsed")
	}
}
