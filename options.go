package zerovault

import (
	"time"

	"github.com/zerovault/core-go/internal/chunker"
	"github.com/zerovault/core-go/internal/kdf"
)

// KeyDerivationParams are the Argon2id cost parameters.
//
// Valid ranges: TimeCost 1..10, MemoryKB 8192..524288, Parallelism 1..4,
// OutputLength 16..64.
type KeyDerivationParams = kdf.Params

// DefaultParams returns the recommended derivation parameters:
// 3 passes over 19 MiB, one lane, 32-byte output.
func DefaultParams() KeyDerivationParams {
	return kdf.DefaultParams()
}

// KDFFunction identifies the password-based KDF used for a derivation.
type KDFFunction = kdf.Function

const (
	// KDFArgon2id is the memory-hard default.
	KDFArgon2id = kdf.FunctionArgon2id
	// KDFFallbackPBKDF2 is the explicit, non-memory-hard fallback.
	KDFFallbackPBKDF2 = kdf.FunctionPBKDF2
)

// KDFObserver is notified after every master key derivation with the function
// used, the parameters and the elapsed time. The hook is the seam for caller
// telemetry; this package carries no metrics dependency.
type KDFObserver = kdf.Observer

// deriveConfig holds configuration for master key derivation.
type deriveConfig struct {
	params   KeyDerivationParams
	function KDFFunction
	observer KDFObserver
}

// DeriveOption configures DeriveMasterKey.
type DeriveOption func(*deriveConfig)

// WithParams overrides the default derivation parameters.
func WithParams(params KeyDerivationParams) DeriveOption {
	return func(c *deriveConfig) {
		c.params = params
	}
}

// WithFallbackKDF selects PBKDF2-SHA-256 instead of Argon2id. The fallback is
// never chosen silently; the function used is stamped on the returned material
// and reported to any observer.
func WithFallbackKDF() DeriveOption {
	return func(c *deriveConfig) {
		c.function = KDFFallbackPBKDF2
	}
}

// WithKDFObserver registers an observer for derivation telemetry.
func WithKDFObserver(obs KDFObserver) DeriveOption {
	return func(c *deriveConfig) {
		c.observer = obs
	}
}

// encryptConfig holds configuration for Encrypt.
type encryptConfig struct {
	algorithm  Algorithm
	purpose    string
	convergent bool
}

// EncryptOption configures Encrypt.
type EncryptOption func(*encryptConfig)

// WithAlgorithm forces a cipher instead of the hardware-probed selection.
func WithAlgorithm(alg Algorithm) EncryptOption {
	return func(c *encryptConfig) {
		c.algorithm = alg
	}
}

// WithPurpose binds a context string to the envelope as additional
// authenticated data. Decryption under a different purpose fails.
func WithPurpose(purpose string) EncryptOption {
	return func(c *encryptConfig) {
		c.purpose = purpose
	}
}

// WithConvergentNonce derives the nonce deterministically from the key and
// plaintext, so identical inputs produce identical envelopes. Enables
// content-addressed deduplication at the cost of revealing duplicate
// plaintexts encrypted under the same key. Never the default.
func WithConvergentNonce() EncryptOption {
	return func(c *encryptConfig) {
		c.convergent = true
	}
}

// decryptConfig holds configuration for Decrypt.
type decryptConfig struct {
	purpose string
	maxAge  time.Duration
}

// DecryptOption configures Decrypt.
type DecryptOption func(*decryptConfig)

// WithExpectedPurpose requires the envelope to be bound to purpose. Without
// it, the envelope's own recorded purpose is used.
func WithExpectedPurpose(purpose string) DecryptOption {
	return func(c *decryptConfig) {
		c.purpose = purpose
	}
}

// WithMaxAge rejects envelopes older than maxAge with ErrDataExpired, before
// any cryptographic work.
func WithMaxAge(maxAge time.Duration) DecryptOption {
	return func(c *decryptConfig) {
		c.maxAge = maxAge
	}
}

// chunkConfig holds configuration for the chunked pipeline.
type chunkConfig struct {
	chunkSize int
	mode      chunker.NonceMode
}

// ChunkOption configures EncryptInChunks and NewChunkEncryptor.
type ChunkOption func(*chunkConfig)

// WithChunkSize overrides the 1 MiB default chunk size. Must be in
// [1, 5 MiB].
func WithChunkSize(size int) ChunkOption {
	return func(c *chunkConfig) {
		c.chunkSize = size
	}
}

// WithConvergentChunks derives chunk nonces deterministically so identical
// payloads encrypted under the same item key produce identical chunks across
// sessions. Same trade-off as WithConvergentNonce.
func WithConvergentChunks() ChunkOption {
	return func(c *chunkConfig) {
		c.mode = chunker.NonceConvergent
	}
}
