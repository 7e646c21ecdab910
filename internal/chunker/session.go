package chunker

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/zerovault/core-go/internal/aead"
)

const (
	// MaxChunkSize caps per-chunk payloads at 5 MiB so a single chunk never
	// exceeds the request limits of typical object-storage boundaries.
	MaxChunkSize = 5 << 20

	// DefaultChunkSize is used when the caller passes zero.
	DefaultChunkSize = 1 << 20

	// itemKeyRefTag domain-separates the key fingerprint PRF.
	itemKeyRefTag = "zerovault:item-key-ref:v1"
)

// NonceMode selects how per-chunk nonces are produced.
type NonceMode byte

const (
	// NonceRandom draws a fresh random nonce per chunk. Semantically secure;
	// the default.
	NonceRandom NonceMode = iota
	// NonceConvergent derives nonces from (chunk key, plaintext), making
	// identical plaintext+key produce identical ciphertext for
	// content-addressed deduplication. Reveals duplicate content encrypted
	// under the same key; callers must choose it explicitly.
	NonceConvergent
)

// Session describes one chunked encryption and drives streaming decryption.
// It carries no secrets: ItemKeyRef is a one-way fingerprint used only to
// detect a mismatched key before work starts.
type Session struct {
	// ID uniquely identifies the session.
	ID string
	// ChunkSize is the plaintext size of every chunk except the last.
	ChunkSize int
	// TotalChunks is the number of chunks the payload was split into.
	TotalChunks int
	// ItemKeyRef fingerprints the item key the chunks were encrypted under.
	ItemKeyRef string
	// NonceMode records the nonce strategy chosen at encryption time.
	NonceMode NonceMode
}

// NewSession validates the geometry and creates a session for totalChunks
// chunks of chunkSize bytes under itemKey.
func NewSession(itemKey []byte, chunkSize, totalChunks int, mode NonceMode) (*Session, error) {
	if chunkSize <= 0 || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidChunkSize, chunkSize, MaxChunkSize)
	}
	if totalChunks < 1 {
		return nil, fmt.Errorf("%w: total chunks %d", ErrInvalidSession, totalChunks)
	}
	if mode != NonceRandom && mode != NonceConvergent {
		return nil, fmt.Errorf("%w: nonce mode %d", ErrInvalidSession, mode)
	}
	if len(itemKey) != aead.KeySize {
		return nil, fmt.Errorf("%w: got %d", aead.ErrInvalidKeyLength, len(itemKey))
	}

	return &Session{
		ID:          uuid.NewString(),
		ChunkSize:   chunkSize,
		TotalChunks: totalChunks,
		ItemKeyRef:  KeyRef(itemKey),
		NonceMode:   mode,
	}, nil
}

// matchesKey reports whether the session was created for itemKey.
func (s *Session) matchesKey(itemKey []byte) bool {
	return hmac.Equal([]byte(s.ItemKeyRef), []byte(KeyRef(itemKey)))
}

// KeyRef computes the one-way fingerprint of an item key recorded in
// sessions. HMAC with a fixed tag rather than a bare hash, so the fingerprint
// cannot be confused with any other derivation of the key.
func KeyRef(itemKey []byte) string {
	mac := hmac.New(sha256.New, itemKey)
	mac.Write([]byte(itemKeyRefTag))
	return hex.EncodeToString(mac.Sum(nil)[:8])
}

// ChunkCount returns how many chunks a payload of dataLen bytes splits into.
// Empty payloads are rejected before this is ever called.
func ChunkCount(dataLen, chunkSize int) int {
	return (dataLen + chunkSize - 1) / chunkSize
}
