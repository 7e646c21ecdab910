package kdf

import "fmt"

const (
	// KeySize is the fixed size of cascade ancestor keys in bytes.
	KeySize = 32

	// MinSaltSize is the minimum accepted salt length in bytes.
	MinSaltSize = 16
	// SaltSize is the recommended salt length in bytes.
	SaltSize = 32

	// MinTimeCost and MaxTimeCost bound the Argon2id iteration count.
	MinTimeCost = 1
	MaxTimeCost = 10

	// MinMemoryKB and MaxMemoryKB bound the Argon2id memory cost (KiB).
	MinMemoryKB = 8192
	MaxMemoryKB = 524288

	// MinParallelism and MaxParallelism bound the Argon2id lane count.
	MinParallelism = 1
	MaxParallelism = 4

	// MinOutputLength and MaxOutputLength bound the master key length.
	MinOutputLength = 16
	MaxOutputLength = 64

	// MinVersion and MaxVersion bound derived key versions.
	MinVersion = 1
	MaxVersion = 999
)

// Params are the tunable costs of the password-based stage. They are immutable
// once chosen for a derivation and must be persisted alongside the user's salt
// so re-derivation is reproducible.
type Params struct {
	// TimeCost is the number of Argon2id passes.
	TimeCost uint32
	// MemoryKB is the Argon2id memory cost in KiB.
	MemoryKB uint32
	// Parallelism is the Argon2id lane count.
	Parallelism uint8
	// OutputLength is the master key length in bytes.
	OutputLength uint32
}

// DefaultParams returns the OWASP-2025 recommended costs: 3 passes over
// 19 MiB with a single lane, producing a 32-byte key.
func DefaultParams() Params {
	return Params{
		TimeCost:     3,
		MemoryKB:     19 * 1024,
		Parallelism:  1,
		OutputLength: KeySize,
	}
}

// Validate checks every parameter against its allowed range.
func (p Params) Validate() error {
	if p.TimeCost < MinTimeCost || p.TimeCost > MaxTimeCost {
		return fmt.Errorf("%w: time cost %d not in [%d, %d]",
			ErrInvalidParams, p.TimeCost, MinTimeCost, MaxTimeCost)
	}
	if p.MemoryKB < MinMemoryKB || p.MemoryKB > MaxMemoryKB {
		return fmt.Errorf("%w: memory %d KiB not in [%d, %d]",
			ErrInvalidParams, p.MemoryKB, MinMemoryKB, MaxMemoryKB)
	}
	if p.Parallelism < MinParallelism || p.Parallelism > MaxParallelism {
		return fmt.Errorf("%w: parallelism %d not in [%d, %d]",
			ErrInvalidParams, p.Parallelism, MinParallelism, MaxParallelism)
	}
	if p.OutputLength < MinOutputLength || p.OutputLength > MaxOutputLength {
		return fmt.Errorf("%w: output length %d not in [%d, %d]",
			ErrInvalidParams, p.OutputLength, MinOutputLength, MaxOutputLength)
	}
	return nil
}
