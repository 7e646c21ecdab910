package zerovault

import (
	"errors"

	"github.com/zerovault/core-go/internal/chunker"
)

// Chunk sizes for the chunked pipeline.
const (
	// MaxChunkSize caps per-chunk payloads at 5 MiB.
	MaxChunkSize = chunker.MaxChunkSize
	// DefaultChunkSize is 1 MiB.
	DefaultChunkSize = chunker.DefaultChunkSize
)

// Chunk is one encrypted slice of a payload. Each chunk is sealed under its
// own derived key and bound to its position.
type Chunk = chunker.Chunk

// ChunkSession describes one chunked encryption and drives decryption. It
// carries no secrets and can be stored alongside the chunks.
type ChunkSession = chunker.Session

// ChunkEncryptor produces chunks one at a time for streamed payloads.
type ChunkEncryptor = chunker.Encryptor

// ChunkDecryptor consumes chunks strictly in index order; the first failed
// chunk aborts the stream permanently.
type ChunkDecryptor = chunker.Decryptor

// EncryptInChunks splits data into chunks (1 MiB by default) and seals each
// under its own key derived from itemKey. The returned session is needed for
// decryption.
func EncryptInChunks(data, itemKey []byte, opts ...ChunkOption) ([]Chunk, *ChunkSession, error) {
	var cfg chunkConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	chunks, session, err := chunker.EncryptAll(data, itemKey, cfg.chunkSize, cfg.mode)
	if err != nil {
		return nil, nil, wrapChunkError(err)
	}
	return chunks, session, nil
}

// DecryptFromChunks verifies and reassembles chunks strictly in index order.
// The first chunk that fails verification aborts reassembly with no partial
// output.
func DecryptFromChunks(chunks []Chunk, session *ChunkSession, itemKey []byte) ([]byte, error) {
	out, err := chunker.DecryptAll(chunks, session, itemKey)
	if err != nil {
		return nil, wrapChunkError(err)
	}
	return out, nil
}

// NewChunkEncryptor creates a streaming encryptor for totalChunks chunks.
// The count must be known up front because every chunk key is bound to it.
func NewChunkEncryptor(itemKey []byte, totalChunks int, opts ...ChunkOption) (*ChunkEncryptor, error) {
	var cfg chunkConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return chunker.NewEncryptor(itemKey, cfg.chunkSize, totalChunks, cfg.mode)
}

// NewChunkDecryptor creates a streaming decryptor for a session. The item key
// is checked against the session's fingerprint before any chunk is touched.
func NewChunkDecryptor(session *ChunkSession, itemKey []byte) (*ChunkDecryptor, error) {
	return chunker.NewDecryptor(session, itemKey)
}

// ChunkCount returns how many chunks a payload of dataLen bytes splits into.
func ChunkCount(dataLen, chunkSize int) int {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return chunker.ChunkCount(dataLen, chunkSize)
}

// wrapChunkError attaches the failing chunk's index when the pipeline
// reported one.
func wrapChunkError(err error) error {
	if errors.Is(err, ErrDecryptionFailed) || errors.Is(err, ErrDataExpired) {
		var idx indexedError
		if errors.As(err, &idx) {
			return &ChunkError{Index: idx.Index(), Err: err}
		}
	}
	return err
}

// indexedError is implemented by pipeline errors that know their chunk index.
type indexedError interface {
	error
	Index() int
}
