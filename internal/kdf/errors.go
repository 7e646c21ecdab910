package kdf

import "errors"

var (
	// ErrInvalidPassword is returned when the password is empty.
	ErrInvalidPassword = errors.New("password must not be empty")

	// ErrInvalidSalt is returned when the salt is shorter than MinSaltSize.
	ErrInvalidSalt = errors.New("salt too short")

	// ErrInvalidParams is returned when a derivation parameter is out of range.
	ErrInvalidParams = errors.New("derivation parameters out of range")

	// ErrInvalidKeyLength is returned when an ancestor key is not exactly
	// KeySize bytes.
	ErrInvalidKeyLength = errors.New("ancestor key must be 32 bytes")

	// ErrInvalidIdentifier is returned when a required identifier (vault ID,
	// item ID, field name, ...) is empty.
	ErrInvalidIdentifier = errors.New("identifier must not be empty")

	// ErrInvalidVersion is returned when a key version is outside [1, 999].
	ErrInvalidVersion = errors.New("key version out of range")

	// ErrInvalidPurpose is returned when a vault key purpose is not one of
	// the known purposes.
	ErrInvalidPurpose = errors.New("unknown vault key purpose")

	// ErrInvalidOutputLength is returned when an HKDF output length is not
	// positive or exceeds the RFC 5869 limit of 255 hash blocks.
	ErrInvalidOutputLength = errors.New("invalid output length")
)
