package kdf

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// maxExpandLength is the RFC 5869 ceiling of 255 hash-length blocks.
const maxExpandLength = 255 * sha256.Size

// Expand derives length bytes from ikm using extract-then-expand
// HKDF-SHA-256. The salt may be empty (RFC 5869 substitutes a zero block);
// info carries the domain separation string.
func Expand(ikm, salt, info []byte, length int) ([]byte, error) {
	if len(ikm) == 0 {
		return nil, fmt.Errorf("%w: empty input key material", ErrInvalidKeyLength)
	}
	if length <= 0 || length > maxExpandLength {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidOutputLength, length, maxExpandLength)
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), out); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}
	return out, nil
}

// contextSalt hashes a context string into a deterministic 32-byte salt.
// Hashing keeps salts fixed-length regardless of identifier size and avoids
// ambiguity between identifiers of different lengths.
func contextSalt(context string) []byte {
	sum := sha256.Sum256([]byte(context))
	return sum[:]
}
