package chunker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChunkSize is returned when the chunk size is not positive or
	// exceeds MaxChunkSize.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidSession is returned when a session does not describe the
	// chunks it is presented with.
	ErrInvalidSession = errors.New("invalid chunk session")

	// ErrChunkOutOfOrder is returned when chunks arrive out of index order.
	ErrChunkOutOfOrder = errors.New("chunk out of order")

	// ErrStreamComplete is returned when more chunks are offered than the
	// session declared.
	ErrStreamComplete = errors.New("chunk stream already complete")

	// ErrStreamIncomplete is returned when reassembly finishes before every
	// declared chunk arrived.
	ErrStreamIncomplete = errors.New("chunk stream incomplete")

	// ErrStreamAborted is returned for every call after a chunk has failed
	// verification. Reassembly never resumes past a bad chunk.
	ErrStreamAborted = errors.New("chunk stream aborted")
)

// ChunkError wraps a per-chunk failure with the chunk's index.
type ChunkError struct {
	Idx int
	Err error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Idx, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Index returns the failing chunk's index.
func (e *ChunkError) Index() int {
	return e.Idx
}
