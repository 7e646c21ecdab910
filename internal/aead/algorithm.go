package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/sys/cpu"
)

// KeySize is the key length required by both supported ciphers.
const KeySize = 32

// Algorithm is the closed set of supported AEAD ciphers.
type Algorithm byte

const (
	// AlgorithmUnknown is the zero value; it never appears in a valid envelope.
	AlgorithmUnknown Algorithm = iota
	// AlgorithmAESGCM is AES-256-GCM with a 96-bit nonce.
	AlgorithmAESGCM
	// AlgorithmXChaCha20 is XChaCha20-Poly1305 with a 192-bit nonce.
	AlgorithmXChaCha20
)

// String returns the canonical wire name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAESGCM:
		return "aes-256-gcm"
	case AlgorithmXChaCha20:
		return "xchacha20-poly1305"
	default:
		return "unknown"
	}
}

// NonceSize returns the nonce length the algorithm requires.
func (a Algorithm) NonceSize() int {
	switch a {
	case AlgorithmAESGCM:
		return 12
	case AlgorithmXChaCha20:
		return chacha20poly1305.NonceSizeX
	default:
		return 0
	}
}

// valid reports whether a is a member of the closed set.
func (a Algorithm) valid() bool {
	return a == AlgorithmAESGCM || a == AlgorithmXChaCha20
}

// ParseAlgorithm maps a wire name back to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "aes-256-gcm":
		return AlgorithmAESGCM, nil
	case "xchacha20-poly1305":
		return AlgorithmXChaCha20, nil
	default:
		return AlgorithmUnknown, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, name)
	}
}

// newCipher constructs the AEAD instance for an algorithm.
func newCipher(alg Algorithm, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}

	switch alg {
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create aes cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case AlgorithmXChaCha20:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("%w: %d", ErrAlgorithmNotSupported, alg)
	}
}

// Reason records why an algorithm was selected.
type Reason string

const (
	// ReasonHardware means the CPU accelerates AES-GCM.
	ReasonHardware Reason = "hardware-acceleration"
	// ReasonSoftware means no acceleration was found and the software cipher
	// was chosen.
	ReasonSoftware Reason = "software-fallback"
	// ReasonUserPreference means the caller forced the algorithm.
	ReasonUserPreference Reason = "user-preference"
)

// Selection is the outcome of algorithm selection.
type Selection struct {
	// Algorithm is the cipher to use.
	Algorithm Algorithm
	// Reason records how the choice was made.
	Reason Reason
	// HardwareAccelerated reports the probe result, independent of which
	// algorithm ended up selected.
	HardwareAccelerated bool
	// PerformanceScore is a relative throughput estimate for the selected
	// algorithm on this CPU (100 = hardware AES-GCM).
	PerformanceScore float64
}

// probeOnce memoizes the hardware probe for the process lifetime. The probe
// reads immutable CPU feature flags, so concurrent first access is idempotent.
var probeOnce = sync.OnceValue(func() bool {
	return (cpu.X86.HasAES && cpu.X86.HasPCLMULQDQ) ||
		(cpu.ARM64.HasAES && cpu.ARM64.HasPMULL) ||
		cpu.S390X.HasAESGCM
})

// performanceScore is a fixed calibration table rather than a runtime
// micro-benchmark, keeping Select cheap and deterministic.
func performanceScore(alg Algorithm, accelerated bool) float64 {
	switch {
	case alg == AlgorithmAESGCM && accelerated:
		return 100
	case alg == AlgorithmXChaCha20:
		return 60
	default: // software AES-GCM
		return 25
	}
}

// Select picks the preferred algorithm for this CPU. The probe runs at most
// once per process.
func Select() Selection {
	accelerated := probeOnce()

	alg := AlgorithmXChaCha20
	reason := ReasonSoftware
	if accelerated {
		alg = AlgorithmAESGCM
		reason = ReasonHardware
	}

	return Selection{
		Algorithm:           alg,
		Reason:              reason,
		HardwareAccelerated: accelerated,
		PerformanceScore:    performanceScore(alg, accelerated),
	}
}

// Force returns a Selection for an explicitly chosen algorithm.
func Force(alg Algorithm) (Selection, error) {
	if !alg.valid() {
		return Selection{}, fmt.Errorf("%w: %d", ErrAlgorithmNotSupported, alg)
	}

	accelerated := probeOnce()
	return Selection{
		Algorithm:           alg,
		Reason:              ReasonUserPreference,
		HardwareAccelerated: accelerated,
		PerformanceScore:    performanceScore(alg, accelerated),
	}, nil
}
