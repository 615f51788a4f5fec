package pipeline

import "io"

// Sink consumes frames. Write is only ever called from the consumer
// goroutine, in queue order.
type Sink interface {
	Write(Frame) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Frame) error

// Write calls f(fr).
func (f SinkFunc) Write(fr Frame) error {
	return f(fr)
}

// WriterSink writes frame payloads to an io.Writer back to back.
type WriterSink struct {
	w       io.Writer
	written int64
}

// NewWriterSink creates a WriterSink on w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes the frame's payload and adds the bytes written to Written.
func (s *WriterSink) Write(f Frame) error {
	n, err := s.w.Write(f.Data)
	s.written += int64(n)
	return err
}

// Written returns the number of bytes written so far.
func (s *WriterSink) Written() int64 {
	return s.written
}
