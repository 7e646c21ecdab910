// Package kdf implements the key derivation engine for the zerovault core.
//
// # Two stages
//
// The password-based stage turns a human password into master key material
// using Argon2id (RFC 9106), a memory-hard function tuned by
// [Params]. Derivation is deterministic: identical (password, salt, params)
// always yields identical key bytes, because the master key is never persisted
// and must be re-derivable at every unlock.
//
// The cascade stage expands high-entropy ancestor keys into purpose-scoped
// child keys with HKDF-SHA-256 (RFC 5869). Every child key is bound to a
// deterministic, context-hashed salt and a domain-separated info string of the
// form "<domain>:<purpose>:<id>[:v<version>]", so two children with different
// info strings are computationally independent even when they share an
// ancestor. Rotation is re-derivation with an incremented version; ancestors
// are never touched.
//
// # Fallback
//
// When a caller explicitly opts out of the memory-hard function,
// [DeriveMaster] falls back to PBKDF2-HMAC-SHA-256 with an iteration count
// scaled by the requested time cost. The fallback is stamped on the returned
// function identifier and is never selected silently.
//
// # Performance
//
// The master stage intentionally takes hundreds of milliseconds and allocates
// the configured memory in full. Run it on a worker goroutine, never on a
// latency-sensitive path. Cascade derivations are microsecond-scale.
package kdf
