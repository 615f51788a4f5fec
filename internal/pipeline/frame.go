// Package pipeline hands opaque frames from one or more producers to a
// single consumer through a bounded queue.
//
// Each Source is drained by its own producer goroutine; the consumer writes
// every frame to the Sink. Producers block when the queue is full, so a slow
// Sink throttles reading instead of growing memory. Every producer finishes
// by pushing exactly one end-of-stream frame, and the consumer stops once it
// has seen one per source.
package pipeline

// Frame is one payload moving through the pipeline. Data is opaque.
type Frame struct {
	Source int    // index of the producing Source
	Seq    uint64 // position within that Source, from 0
	Data   []byte

	// EOS marks the last frame of a Source. It carries no data.
	EOS bool
}

func endOfStream(source int) Frame {
	return Frame{Source: source, EOS: true}
}
