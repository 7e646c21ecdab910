// Package aead implements the authenticated encryption service for the
// zerovault core.
//
// Two AEAD ciphers are supported, modeled as a closed enum:
//
//   - AES-256-GCM (96-bit nonce): preferred when the CPU has AES
//     instructions, where it is both the fastest option and constant-time.
//   - XChaCha20-Poly1305 (192-bit nonce): preferred in software, where its
//     performance does not depend on secret-dependent table lookups.
//
// [Select] probes the CPU once per process and memoizes the choice; [Force]
// overrides it per call site and records the reason as a user preference.
//
// Encryption produces a self-describing [Envelope]: ciphertext with the
// authentication tag attached, the nonce, the algorithm tag, a timestamp and
// an optional purpose string bound as additional authenticated data. A
// (key, nonce) pair is used at most once: nonces are freshly random unless the
// caller explicitly opts into convergent mode, which derives the nonce from
// the key and plaintext to enable content-addressed deduplication at the
// documented cost of revealing duplicate plaintexts under the same key.
//
// Decryption collapses every authentication failure into a single
// ErrDecryptionFailed so callers cannot be used as a decryption oracle;
// expiry (ErrDataExpired) and unknown algorithms (ErrAlgorithmNotSupported)
// are detected before any cryptographic work and reported distinctly.
package aead
