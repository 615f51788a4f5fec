package pipeline

import (
	"errors"
	"fmt"
	"io"
)

// ErrBadFrameSize is returned by ChunkSource.Next when the frame size is
// below 1 byte.
var ErrBadFrameSize = errors.New("pipeline: frame size must be at least 1")

// Source produces payloads until it returns io.EOF.
type Source interface {
	Next() ([]byte, error)
}

// ChunkSource cuts a reader into fixed-size payloads. The final payload is
// shorter if the input is not a multiple of the frame size.
type ChunkSource struct {
	r    io.Reader
	size int
}

// NewChunkSource creates a ChunkSource reading frameSize bytes per payload.
// A frameSize below 1 makes every Next call fail with ErrBadFrameSize.
func NewChunkSource(r io.Reader, frameSize int) *ChunkSource {
	return &ChunkSource{r: r, size: frameSize}
}

// Next returns the next payload, or io.EOF once the reader is exhausted.
func (s *ChunkSource) Next() ([]byte, error) {
	if s.size < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrBadFrameSize, s.size)
	}
	buf := make([]byte, s.size)
	n, err := io.ReadFull(s.r, buf)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:n], nil
	default:
		return nil, err
	}
}
