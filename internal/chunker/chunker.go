package chunker

import (
	"fmt"

	"github.com/zerovault/core-go/internal/aead"
	"github.com/zerovault/core-go/internal/kdf"
	"github.com/zerovault/core-go/internal/wipe"
)

// Chunk is one encrypted slice of a payload.
type Chunk struct {
	// Index is the chunk's position; order is significant.
	Index int
	// Envelope holds the chunk's independently verified ciphertext.
	Envelope *aead.Envelope
}

// chunkPurpose binds a chunk's envelope to its position so an envelope cannot
// be replayed into another slot. Random-nonce sessions additionally bind the
// session ID; convergent sessions cannot, since identical content must produce
// identical envelopes across sessions for deduplication to work.
func (s *Session) chunkPurpose(index int) string {
	if s.NonceMode == NonceConvergent {
		return fmt.Sprintf("chunk:%d:%d", index, s.TotalChunks)
	}
	return fmt.Sprintf("chunk:%s:%d", s.ID, index)
}

// sealChunk derives the chunk key and encrypts one slice. The derived key is
// wiped before returning.
func sealChunk(s *Session, itemKey, plaintext []byte, index int) (*Chunk, error) {
	chunkKey, err := kdf.DeriveChunkKey(itemKey, index, s.TotalChunks)
	if err != nil {
		return nil, err
	}
	defer wipe.Bytes(chunkKey)

	env, err := aead.Seal(plaintext, chunkKey, aead.SealOptions{
		Purpose:    s.chunkPurpose(index),
		Convergent: s.NonceMode == NonceConvergent,
	})
	if err != nil {
		return nil, &ChunkError{Idx: index, Err: err}
	}
	return &Chunk{Index: index, Envelope: env}, nil
}

// openChunk derives the chunk key and decrypts one slice.
func openChunk(s *Session, itemKey []byte, c Chunk) ([]byte, error) {
	chunkKey, err := kdf.DeriveChunkKey(itemKey, c.Index, s.TotalChunks)
	if err != nil {
		return nil, err
	}
	defer wipe.Bytes(chunkKey)

	plaintext, err := aead.Open(c.Envelope, chunkKey, aead.OpenOptions{
		Purpose: s.chunkPurpose(c.Index),
	})
	if err != nil {
		return nil, &ChunkError{Idx: c.Index, Err: err}
	}
	return plaintext, nil
}

// EncryptAll splits data into chunks of chunkSize bytes and encrypts each
// under its own derived key. chunkSize zero selects DefaultChunkSize.
func EncryptAll(data, itemKey []byte, chunkSize int, mode NonceMode) ([]Chunk, *Session, error) {
	if len(data) == 0 {
		return nil, nil, aead.ErrInvalidDataSize
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 || chunkSize > MaxChunkSize {
		return nil, nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidChunkSize, chunkSize, MaxChunkSize)
	}

	session, err := NewSession(itemKey, chunkSize, ChunkCount(len(data), chunkSize), mode)
	if err != nil {
		return nil, nil, err
	}

	chunks := make([]Chunk, 0, session.TotalChunks)
	for index := 0; index < session.TotalChunks; index++ {
		start := index * chunkSize
		end := min(start+chunkSize, len(data))

		chunk, err := sealChunk(session, itemKey, data[start:end], index)
		if err != nil {
			return nil, nil, err
		}
		chunks = append(chunks, *chunk)
	}
	return chunks, session, nil
}

// DecryptAll verifies and reassembles chunks strictly in index order. The
// first chunk that fails verification aborts reassembly; no partial output is
// ever returned.
func DecryptAll(chunks []Chunk, session *Session, itemKey []byte) ([]byte, error) {
	dec, err := NewDecryptor(session, itemKey)
	if err != nil {
		return nil, err
	}
	if len(chunks) != session.TotalChunks {
		return nil, fmt.Errorf("%w: got %d chunks, session declares %d",
			ErrInvalidSession, len(chunks), session.TotalChunks)
	}

	out := make([]byte, 0, len(chunks)*session.ChunkSize)
	for _, chunk := range chunks {
		plaintext, err := dec.Next(chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, plaintext...)
	}
	if !dec.Done() {
		return nil, ErrStreamIncomplete
	}
	return out, nil
}

// Encryptor produces chunks one at a time, for callers that stream a payload
// instead of holding it in memory. The total chunk count must be known up
// front because every chunk key is bound to it.
type Encryptor struct {
	session *Session
	itemKey []byte
	next    int
}

// NewEncryptor creates a streaming encryptor for totalChunks chunks of
// chunkSize bytes.
func NewEncryptor(itemKey []byte, chunkSize, totalChunks int, mode NonceMode) (*Encryptor, error) {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	session, err := NewSession(itemKey, chunkSize, totalChunks, mode)
	if err != nil {
		return nil, err
	}

	return &Encryptor{
		session: session,
		itemKey: append([]byte(nil), itemKey...),
		next:    0,
	}, nil
}

// Session returns the session describing this stream.
func (e *Encryptor) Session() *Session { return e.session }

// Next encrypts the next chunk of plaintext. Every chunk except the last
// must be exactly the session's chunk size; the last may be shorter.
func (e *Encryptor) Next(plaintext []byte) (*Chunk, error) {
	if e.next >= e.session.TotalChunks {
		return nil, ErrStreamComplete
	}

	last := e.next == e.session.TotalChunks-1
	if !last && len(plaintext) != e.session.ChunkSize {
		return nil, fmt.Errorf("%w: chunk %d is %d bytes, want %d",
			ErrInvalidChunkSize, e.next, len(plaintext), e.session.ChunkSize)
	}
	if last && (len(plaintext) == 0 || len(plaintext) > e.session.ChunkSize) {
		return nil, fmt.Errorf("%w: final chunk is %d bytes, want 1..%d",
			ErrInvalidChunkSize, len(plaintext), e.session.ChunkSize)
	}

	chunk, err := sealChunk(e.session, e.itemKey, plaintext, e.next)
	if err != nil {
		return nil, err
	}
	e.next++
	if e.Done() {
		wipe.Bytes(e.itemKey)
	}
	return chunk, nil
}

// Done reports whether every declared chunk has been produced.
func (e *Encryptor) Done() bool { return e.next >= e.session.TotalChunks }

// Decryptor consumes chunks strictly in index order. After any verification
// failure the stream is aborted permanently.
type Decryptor struct {
	session *Session
	itemKey []byte
	next    int
	aborted bool
}

// NewDecryptor creates a streaming decryptor for a session. The item key is
// checked against the session's fingerprint before any chunk is touched.
func NewDecryptor(session *Session, itemKey []byte) (*Decryptor, error) {
	if session == nil || session.TotalChunks < 1 || session.ChunkSize < 1 {
		return nil, ErrInvalidSession
	}
	if len(itemKey) != aead.KeySize {
		return nil, fmt.Errorf("%w: got %d", aead.ErrInvalidKeyLength, len(itemKey))
	}
	if !session.matchesKey(itemKey) {
		return nil, fmt.Errorf("%w: item key does not match session", ErrInvalidSession)
	}

	return &Decryptor{
		session: session,
		itemKey: append([]byte(nil), itemKey...),
	}, nil
}

// Next verifies and decrypts the next chunk. Chunks must arrive in index
// order; a failed chunk aborts the stream for good.
func (d *Decryptor) Next(chunk Chunk) ([]byte, error) {
	if d.aborted {
		return nil, ErrStreamAborted
	}
	if d.next >= d.session.TotalChunks {
		return nil, ErrStreamComplete
	}
	if chunk.Index != d.next {
		return nil, fmt.Errorf("%w: got index %d, want %d", ErrChunkOutOfOrder, chunk.Index, d.next)
	}

	plaintext, err := openChunk(d.session, d.itemKey, chunk)
	if err != nil {
		d.aborted = true
		wipe.Bytes(d.itemKey)
		return nil, err
	}
	d.next++
	if d.Done() {
		wipe.Bytes(d.itemKey)
	}
	return plaintext, nil
}

// Done reports whether every declared chunk has been consumed.
func (d *Decryptor) Done() bool { return d.next >= d.session.TotalChunks }
