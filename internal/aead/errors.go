package aead

import "errors"

var (
	// ErrInvalidDataSize is returned when the plaintext is empty.
	ErrInvalidDataSize = errors.New("plaintext must not be empty")

	// ErrInvalidKeyLength is returned when the key is not exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("key must be 32 bytes")

	// ErrAlgorithmNotSupported is returned when an envelope carries an
	// unknown or unavailable algorithm tag.
	ErrAlgorithmNotSupported = errors.New("algorithm not supported")

	// ErrDecryptionFailed is the single opaque failure for any ciphertext,
	// nonce or tag verification problem. Deliberately indistinct.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrDataExpired is returned when an envelope is older than the caller's
	// maximum age. Checked before any cryptographic verification.
	ErrDataExpired = errors.New("encrypted data has expired")
)
