package srp

import "errors"

var (
	// ErrInvalidCredentials is returned when the identity or password is
	// empty. Detected before any cryptographic work.
	ErrInvalidCredentials = errors.New("identity and password must not be empty")

	// ErrInvalidVerifier is returned when a stored verifier or salt cannot
	// be used.
	ErrInvalidVerifier = errors.New("invalid verifier or salt")

	// ErrInvalidPublicKey is returned when a peer's ephemeral public value
	// is outside the group (A or B ≡ 0 mod N).
	ErrInvalidPublicKey = errors.New("invalid ephemeral public key")

	// ErrAuthenticationFailed is the single opaque failure for a proof
	// mismatch. Deliberately indistinct about why verification failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionNotFound is returned when no challenge is outstanding for an
	// identity, including replays of an already-consumed session.
	ErrSessionNotFound = errors.New("no active authentication session")

	// ErrSessionExpired is returned when a challenge outlived its TTL.
	// Reported distinctly from a proof mismatch.
	ErrSessionExpired = errors.New("authentication session expired")
)
