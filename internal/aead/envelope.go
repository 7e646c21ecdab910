package aead

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"time"
)

// convergentNonceTag domain-separates the nonce PRF from every other use of
// HMAC in the system.
const convergentNonceTag = "zerovault:convergent-nonce:v1"

// Envelope is the self-describing output of an encryption operation. Only
// envelopes, never plaintext or keys, cross the core's boundary.
type Envelope struct {
	// Ciphertext is the encrypted payload with the 16-byte authentication
	// tag attached.
	Ciphertext []byte
	// Nonce has the length fixed by Algorithm.
	Nonce []byte
	// Algorithm identifies the cipher that produced the envelope.
	Algorithm Algorithm
	// Timestamp records when the envelope was created; decryption can
	// enforce a maximum age against it.
	Timestamp time.Time
	// Purpose is optional context bound as additional authenticated data.
	Purpose string
}

// SealOptions configure Seal.
type SealOptions struct {
	// Algorithm overrides the process-wide selection when non-zero.
	Algorithm Algorithm
	// Purpose, when set, is bound as additional authenticated data.
	Purpose string
	// Convergent derives the nonce deterministically from (key, purpose,
	// plaintext) instead of drawing it at random. Identical inputs then
	// produce identical envelopes, which enables deduplication but reveals
	// duplicate plaintexts encrypted under the same key. Never the default.
	Convergent bool
}

// OpenOptions configure Open.
type OpenOptions struct {
	// Purpose is the context the caller expects the envelope to be bound
	// to. When empty, the envelope's own purpose is used.
	Purpose string
	// MaxAge rejects envelopes older than this before any cryptographic
	// work. Zero disables the check.
	MaxAge time.Duration
}

// Seal encrypts plaintext into an Envelope.
func Seal(plaintext, key []byte, opts SealOptions) (*Envelope, error) {
	if len(plaintext) == 0 {
		return nil, ErrInvalidDataSize
	}

	alg := opts.Algorithm
	if alg == AlgorithmUnknown {
		alg = Select().Algorithm
	}
	if !alg.valid() {
		return nil, fmt.Errorf("%w: %d", ErrAlgorithmNotSupported, alg)
	}

	aead, err := newCipher(alg, key)
	if err != nil {
		return nil, err
	}

	var nonce []byte
	if opts.Convergent {
		nonce = convergentNonce(key, opts.Purpose, plaintext, alg.NonceSize())
	} else {
		nonce = make([]byte, alg.NonceSize())
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, fmt.Errorf("generate nonce: %w", err)
		}
	}

	return &Envelope{
		Ciphertext: aead.Seal(nil, nonce, plaintext, aad(opts.Purpose)),
		Nonce:      nonce,
		Algorithm:  alg,
		Timestamp:  time.Now().UTC(),
		Purpose:    opts.Purpose,
	}, nil
}

// Open authenticates and decrypts an Envelope. Any tampering with the
// ciphertext, nonce, tag or bound purpose yields the same ErrDecryptionFailed.
func Open(env *Envelope, key []byte, opts OpenOptions) ([]byte, error) {
	if env == nil {
		return nil, ErrDecryptionFailed
	}
	if !env.Algorithm.valid() {
		return nil, fmt.Errorf("%w: %d", ErrAlgorithmNotSupported, env.Algorithm)
	}

	// Expiry is a policy decision, checked before touching the ciphertext.
	if opts.MaxAge > 0 && time.Since(env.Timestamp) > opts.MaxAge {
		return nil, ErrDataExpired
	}

	aead, err := newCipher(env.Algorithm, key)
	if err != nil {
		return nil, err
	}

	if len(env.Nonce) != env.Algorithm.NonceSize() {
		return nil, ErrDecryptionFailed
	}

	purpose := opts.Purpose
	if purpose == "" {
		purpose = env.Purpose
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, aad(purpose))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// aad maps a purpose string to the additional authenticated data slice.
func aad(purpose string) []byte {
	if purpose == "" {
		return nil
	}
	return []byte(purpose)
}

// convergentNonce computes HMAC-SHA-256(key, tag ‖ purpose ‖ plaintext)
// truncated to the algorithm's nonce size. Keying the PRF with the encryption
// key keeps the nonce unpredictable to anyone who cannot already decrypt.
func convergentNonce(key []byte, purpose string, plaintext []byte, size int) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(convergentNonceTag))
	mac.Write([]byte(purpose))
	mac.Write(plaintext)
	sum := mac.Sum(nil)
	return sum[:size]
}
