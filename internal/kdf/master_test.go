package kdf

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// fastParams keeps Argon2id at the cheap end of the allowed ranges so the
// suite stays quick.
func fastParams() Params {
	return Params{TimeCost: 1, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: 32}
}

func TestDeriveMaster_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0xA5}, SaltSize)

	first, _, err := DeriveMaster(password, salt, fastParams(), FunctionArgon2id, nil)
	if err != nil {
		t.Fatalf("DeriveMaster() error = %v", err)
	}
	second, _, err := DeriveMaster(password, salt, fastParams(), FunctionArgon2id, nil)
	if err != nil {
		t.Fatalf("DeriveMaster() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("same inputs produced different keys")
	}
	if len(first) != 32 {
		t.Errorf("key length = %d, want 32", len(first))
	}
}

func TestDeriveMaster_SaltSensitivity(t *testing.T) {
	password := []byte("correct horse battery staple")
	saltA := bytes.Repeat([]byte{0x01}, SaltSize)
	saltB := bytes.Repeat([]byte{0x02}, SaltSize)

	keyA, _, err := DeriveMaster(password, saltA, fastParams(), FunctionArgon2id, nil)
	if err != nil {
		t.Fatal(err)
	}
	keyB, _, err := DeriveMaster(password, saltB, fastParams(), FunctionArgon2id, nil)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(keyA, keyB) {
		t.Error("different salts produced the same key")
	}
}

func TestDeriveMaster_Validation(t *testing.T) {
	goodSalt := bytes.Repeat([]byte{0x01}, SaltSize)

	tests := []struct {
		name     string
		password []byte
		salt     []byte
		params   Params
		wantErr  error
	}{
		{"empty password", nil, goodSalt, fastParams(), ErrInvalidPassword},
		{"short salt", []byte("pw"), make([]byte, MinSaltSize-1), fastParams(), ErrInvalidSalt},
		{"zero time cost", []byte("pw"), goodSalt,
			Params{TimeCost: 0, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: 32}, ErrInvalidParams},
		{"time cost too high", []byte("pw"), goodSalt,
			Params{TimeCost: MaxTimeCost + 1, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: 32}, ErrInvalidParams},
		{"memory too low", []byte("pw"), goodSalt,
			Params{TimeCost: 1, MemoryKB: MinMemoryKB - 1, Parallelism: 1, OutputLength: 32}, ErrInvalidParams},
		{"memory too high", []byte("pw"), goodSalt,
			Params{TimeCost: 1, MemoryKB: MaxMemoryKB + 1, Parallelism: 1, OutputLength: 32}, ErrInvalidParams},
		{"parallelism too high", []byte("pw"), goodSalt,
			Params{TimeCost: 1, MemoryKB: MinMemoryKB, Parallelism: MaxParallelism + 1, OutputLength: 32}, ErrInvalidParams},
		{"output too short", []byte("pw"), goodSalt,
			Params{TimeCost: 1, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: MinOutputLength - 1}, ErrInvalidParams},
		{"output too long", []byte("pw"), goodSalt,
			Params{TimeCost: 1, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: MaxOutputLength + 1}, ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DeriveMaster(tt.password, tt.salt, tt.params, FunctionArgon2id, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DeriveMaster() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeriveMaster_FallbackIsObservable(t *testing.T) {
	password := []byte("pw")
	salt := bytes.Repeat([]byte{0x07}, SaltSize)
	params := Params{TimeCost: 1, MemoryKB: MinMemoryKB, Parallelism: 1, OutputLength: 32}

	var observed Function
	var observedElapsed time.Duration
	obs := func(fn Function, _ Params, elapsed time.Duration) {
		observed = fn
		observedElapsed = elapsed
	}

	key, elapsed, err := DeriveMaster(password, salt, params, FunctionPBKDF2, obs)
	if err != nil {
		t.Fatalf("DeriveMaster() error = %v", err)
	}
	if len(key) != 32 {
		t.Errorf("key length = %d, want 32", len(key))
	}
	if observed != FunctionPBKDF2 {
		t.Errorf("observer saw function %q, want %q", observed, FunctionPBKDF2)
	}
	if observedElapsed != elapsed {
		t.Errorf("observer elapsed %v != returned %v", observedElapsed, elapsed)
	}

	// The fallback must differ from the memory-hard output for the same inputs.
	argonKey, _, err := DeriveMaster(password, salt, params, FunctionArgon2id, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(key, argonKey) {
		t.Error("pbkdf2 fallback produced the argon2id key")
	}
}

func TestDeriveMaster_UnknownFunction(t *testing.T) {
	salt := bytes.Repeat([]byte{0x07}, SaltSize)
	_, _, err := DeriveMaster([]byte("pw"), salt, fastParams(), Function("bcrypt"), nil)
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("error = %v, want ErrInvalidParams", err)
	}
}
