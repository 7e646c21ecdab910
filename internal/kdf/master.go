package kdf

import (
	"crypto/sha256"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Function identifies the password-based KDF used for a derivation.
type Function string

const (
	// FunctionArgon2id is the memory-hard default.
	FunctionArgon2id Function = "argon2id"
	// FunctionPBKDF2 is the explicit, non-memory-hard fallback.
	FunctionPBKDF2 Function = "pbkdf2-sha256"
)

// fallbackIterationsPerCost scales PBKDF2 iterations by the requested time
// cost to partially compensate for the loss of memory-hardness. TimeCost 3
// yields 1,800,000 iterations, triple the OWASP-2025 PBKDF2-SHA-256 floor.
const fallbackIterationsPerCost = 600_000

// Observer is notified after every master key derivation. It exists so the
// caller's telemetry can record timings and, critically, fallback use; this
// core carries no metrics dependency of its own.
type Observer func(fn Function, params Params, elapsed time.Duration)

// DeriveMaster derives master key material from a password. Input validation
// happens before any cryptographic work. The same (password, salt, params,
// fn) always produces the same key.
func DeriveMaster(password, salt []byte, p Params, fn Function, obs Observer) ([]byte, time.Duration, error) {
	if len(password) == 0 {
		return nil, 0, ErrInvalidPassword
	}
	if len(salt) < MinSaltSize {
		return nil, 0, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidSalt, len(salt), MinSaltSize)
	}
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	start := time.Now()

	var key []byte
	switch fn {
	case FunctionArgon2id:
		key = argon2.IDKey(password, salt, p.TimeCost, p.MemoryKB, p.Parallelism, p.OutputLength)
	case FunctionPBKDF2:
		iterations := int(p.TimeCost) * fallbackIterationsPerCost
		key = pbkdf2.Key(password, salt, iterations, int(p.OutputLength), sha256.New)
	default:
		return nil, 0, fmt.Errorf("%w: unknown function %q", ErrInvalidParams, fn)
	}

	elapsed := time.Since(start)
	if obs != nil {
		obs(fn, p, elapsed)
	}
	return key, elapsed, nil
}
