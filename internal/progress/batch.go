package progress

import "time"

// BatchTicker checks the clock only every N calls to Tick().
//
// With every=1000 and interval=2s the clock is read once per 1000 calls and
// a tick fires if 2s have passed. Use it when items arrive far faster than
// the interval. BatchTicker is NOT safe for concurrent use.
type BatchTicker struct {
	interval time.Duration
	every    int
	count    int
	lastTick int64
}

// NewBatch creates a BatchTicker that checks time every N calls.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		interval: interval,
		every:    every,
		lastTick: nanotime(),
	}
}

// Tick returns true if the interval has elapsed.
// On calls that do not land on the batch boundary it returns false without
// reading the clock.
func (b *BatchTicker) Tick() bool {
	b.count++
	if b.count%b.every != 0 {
		return false
	}

	now := nanotime()
	if time.Duration(now-b.lastTick) >= b.interval {
		b.lastTick = now
		return true
	}
	return false
}

// Reset resets the ticker state.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.lastTick = nanotime()
}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}
