package zerovault

import (
	"errors"
	"fmt"

	"github.com/zerovault/core-go/internal/aead"
	"github.com/zerovault/core-go/internal/chunker"
	"github.com/zerovault/core-go/internal/kdf"
	"github.com/zerovault/core-go/internal/srp"
)

// Sentinel errors for errors.Is() checks. Validation errors name exactly what
// was rejected; cryptographic verification failures are deliberately opaque.
var (
	// ErrInvalidPassword is returned when the password is empty.
	ErrInvalidPassword = kdf.ErrInvalidPassword

	// ErrInvalidSalt is returned when a salt is shorter than 16 bytes.
	ErrInvalidSalt = kdf.ErrInvalidSalt

	// ErrInvalidParams is returned when derivation parameters are out of range.
	ErrInvalidParams = kdf.ErrInvalidParams

	// ErrInvalidKeyLength is returned when a key is not the required 32 bytes.
	ErrInvalidKeyLength = aead.ErrInvalidKeyLength

	// ErrInvalidIdentifier is returned when a vault, item, field or recipient
	// identifier is empty.
	ErrInvalidIdentifier = kdf.ErrInvalidIdentifier

	// ErrInvalidVersion is returned when an item key version is outside [1, 999].
	ErrInvalidVersion = kdf.ErrInvalidVersion

	// ErrInvalidDataSize is returned when a plaintext is empty.
	ErrInvalidDataSize = aead.ErrInvalidDataSize

	// ErrAlgorithmNotSupported is returned for an algorithm outside the
	// supported set.
	ErrAlgorithmNotSupported = aead.ErrAlgorithmNotSupported

	// ErrDecryptionFailed is the single opaque error for any authentication
	// or decryption failure: wrong key, tampered ciphertext, nonce, tag or
	// bound purpose all look the same.
	ErrDecryptionFailed = aead.ErrDecryptionFailed

	// ErrDataExpired is returned when an envelope is older than the caller's
	// maximum age. Reported distinctly from decryption failure and decided
	// before any cryptographic work.
	ErrDataExpired = aead.ErrDataExpired

	// ErrInvalidChunkSize is returned when a chunk size is outside [1, 5 MiB]
	// or a streamed chunk has the wrong length.
	ErrInvalidChunkSize = chunker.ErrInvalidChunkSize

	// ErrInvalidSession is returned when a chunk session is malformed or was
	// created for a different item key.
	ErrInvalidSession = chunker.ErrInvalidSession

	// ErrChunkOutOfOrder is returned when chunks arrive out of index order.
	ErrChunkOutOfOrder = chunker.ErrChunkOutOfOrder

	// ErrStreamComplete is returned when a finished stream is pushed more data.
	ErrStreamComplete = chunker.ErrStreamComplete

	// ErrStreamIncomplete is returned when reassembly ends before every
	// declared chunk arrived.
	ErrStreamIncomplete = chunker.ErrStreamIncomplete

	// ErrStreamAborted is returned for every call after a chunk failed
	// verification.
	ErrStreamAborted = chunker.ErrStreamAborted

	// ErrInvalidCredentials is returned when an identity or password is empty.
	ErrInvalidCredentials = srp.ErrInvalidCredentials

	// ErrInvalidVerifier is returned when a stored verifier or salt is unusable.
	ErrInvalidVerifier = srp.ErrInvalidVerifier

	// ErrInvalidPublicKey is returned when a peer's ephemeral public value is
	// outside the SRP group.
	ErrInvalidPublicKey = srp.ErrInvalidPublicKey

	// ErrAuthenticationFailed is the single opaque error for an SRP proof
	// mismatch.
	ErrAuthenticationFailed = srp.ErrAuthenticationFailed

	// ErrSessionNotFound is returned when no challenge is outstanding for an
	// identity, including replays of a consumed session.
	ErrSessionNotFound = srp.ErrSessionNotFound

	// ErrSessionExpired is returned when a challenge outlived its TTL.
	ErrSessionExpired = srp.ErrSessionExpired
)

// ZeroVaultError is implemented by all typed errors of this package.
type ZeroVaultError interface {
	error
	ZeroVaultError() // marker method
}

// DerivationError reports which stage of key derivation failed.
type DerivationError struct {
	Stage string // "master", "expand", "cascade"
	Err   error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("key derivation failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DerivationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching. The derivation
// packages carry their own key-length sentinel; map it onto the public one.
func (e *DerivationError) Is(target error) bool {
	if target == ErrInvalidKeyLength {
		return errors.Is(e.Err, kdf.ErrInvalidKeyLength)
	}
	return false
}

// ZeroVaultError implements the ZeroVaultError interface.
func (e *DerivationError) ZeroVaultError() {}

// ChunkError reports which chunk of a pipeline failed.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// ZeroVaultError implements the ZeroVaultError interface.
func (e *ChunkError) ZeroVaultError() {}

// wrapDerivation attaches the derivation stage to internal errors.
// Sentinel identity is preserved through Unwrap, so errors.Is keeps working.
func wrapDerivation(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &DerivationError{Stage: stage, Err: err}
}
