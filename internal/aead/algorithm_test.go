package aead

import (
	"errors"
	"sync"
	"testing"
)

func TestSelect_Memoized(t *testing.T) {
	first := Select()

	if !first.Algorithm.valid() {
		t.Fatalf("selected invalid algorithm %v", first.Algorithm)
	}

	switch first.Reason {
	case ReasonHardware:
		if first.Algorithm != AlgorithmAESGCM || !first.HardwareAccelerated {
			t.Errorf("hardware reason with selection %+v", first)
		}
	case ReasonSoftware:
		if first.Algorithm != AlgorithmXChaCha20 || first.HardwareAccelerated {
			t.Errorf("software reason with selection %+v", first)
		}
	default:
		t.Errorf("unexpected reason %q", first.Reason)
	}

	// Concurrent callers must all observe the same memoized probe.
	var wg sync.WaitGroup
	results := make([]Selection, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Select()
		}(i)
	}
	wg.Wait()

	for i, sel := range results {
		if sel != first {
			t.Errorf("concurrent Select()[%d] = %+v, want %+v", i, sel, first)
		}
	}
}

func TestForce(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmAESGCM, AlgorithmXChaCha20} {
		sel, err := Force(alg)
		if err != nil {
			t.Fatalf("Force(%v) error = %v", alg, err)
		}
		if sel.Algorithm != alg {
			t.Errorf("Force(%v) selected %v", alg, sel.Algorithm)
		}
		if sel.Reason != ReasonUserPreference {
			t.Errorf("Force(%v) reason = %q, want %q", alg, sel.Reason, ReasonUserPreference)
		}
		if sel.PerformanceScore <= 0 {
			t.Errorf("Force(%v) performance score = %v", alg, sel.PerformanceScore)
		}
	}

	if _, err := Force(AlgorithmUnknown); !errors.Is(err, ErrAlgorithmNotSupported) {
		t.Errorf("Force(unknown) error = %v, want ErrAlgorithmNotSupported", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    Algorithm
		wantErr bool
	}{
		{"aes-256-gcm", AlgorithmAESGCM, false},
		{"xchacha20-poly1305", AlgorithmXChaCha20, false},
		{"aes-128-gcm", AlgorithmUnknown, true},
		{"", AlgorithmUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAlgorithmRoundTripNames(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmAESGCM, AlgorithmXChaCha20} {
		parsed, err := ParseAlgorithm(alg.String())
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error = %v", alg.String(), err)
		}
		if parsed != alg {
			t.Errorf("name round trip %v -> %q -> %v", alg, alg.String(), parsed)
		}
	}
}
