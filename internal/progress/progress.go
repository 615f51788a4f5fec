// Package progress reports throughput from hot producer/consumer loops.
//
// A Meter counts frames and bytes and logs a progress line whenever its
// Ticker fires. Tickers are polled, never waited on, so a loop can check one
// on every item:
//   - AtomicTicker: atomic timestamp comparison using runtime.nanotime
//   - BatchTicker: reads the clock only every N calls
package progress

import "time"

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()
}

// DefaultInterval is the progress interval used when none is configured.
const DefaultInterval = 2 * time.Second
