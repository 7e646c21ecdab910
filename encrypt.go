package zerovault

import (
	"github.com/zerovault/core-go/internal/aead"
)

// Algorithm is the closed set of supported AEAD ciphers.
type Algorithm = aead.Algorithm

const (
	// AlgorithmAESGCM is AES-256-GCM with a 96-bit nonce.
	AlgorithmAESGCM = aead.AlgorithmAESGCM
	// AlgorithmXChaCha20 is XChaCha20-Poly1305 with a 192-bit nonce.
	AlgorithmXChaCha20 = aead.AlgorithmXChaCha20
)

// ParseAlgorithm maps a wire name ("aes-256-gcm", "xchacha20-poly1305") back
// to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	return aead.ParseAlgorithm(name)
}

// EncryptedEnvelope is the self-describing output of Encrypt: ciphertext with
// attached tag, nonce, algorithm, timestamp and optional bound purpose. Only
// envelopes, never plaintext or keys, cross this package's boundary.
type EncryptedEnvelope = aead.Envelope

// AlgorithmSelection is the outcome of algorithm selection: the cipher, why
// it was chosen, and whether the CPU accelerates AES-GCM.
type AlgorithmSelection = aead.Selection

// SelectAlgorithm picks the preferred cipher for this CPU: AES-256-GCM when
// hardware-accelerated, XChaCha20-Poly1305 otherwise. The hardware probe runs
// at most once per process.
func SelectAlgorithm() AlgorithmSelection {
	return aead.Select()
}

// ForceAlgorithm returns a selection for an explicitly chosen cipher.
func ForceAlgorithm(alg Algorithm) (AlgorithmSelection, error) {
	return aead.Force(alg)
}

// Encrypt seals plaintext under a 32-byte key into a self-describing
// envelope. Empty plaintext is rejected; a fresh random nonce is drawn per
// call unless WithConvergentNonce is set.
func Encrypt(plaintext, key []byte, opts ...EncryptOption) (*EncryptedEnvelope, error) {
	var cfg encryptConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return aead.Seal(plaintext, key, aead.SealOptions{
		Algorithm:  cfg.algorithm,
		Purpose:    cfg.purpose,
		Convergent: cfg.convergent,
	})
}

// Decrypt authenticates and opens an envelope. Any tampering with the
// ciphertext, nonce, tag or bound purpose yields ErrDecryptionFailed; an
// envelope older than WithMaxAge yields ErrDataExpired before any
// cryptographic work.
func Decrypt(env *EncryptedEnvelope, key []byte, opts ...DecryptOption) ([]byte, error) {
	var cfg decryptConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return aead.Open(env, key, aead.OpenOptions{
		Purpose: cfg.purpose,
		MaxAge:  cfg.maxAge,
	})
}
