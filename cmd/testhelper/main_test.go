package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunRequiresCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"testhelper"}, &out); err == nil {
		t.Fatal("run() with no command succeeded, want error")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"testhelper", "bogus"}, &out)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("run() error = %v, want unknown command", err)
	}
}

func TestDeriveItemVector(t *testing.T) {
	accountKey := hex.EncodeToString(bytes.Repeat([]byte{0x11}, 32))

	var out bytes.Buffer
	if err := run([]string{"testhelper", "derive-item", accountKey, "item-42", "password", "1"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var vector struct {
		ItemKey string `json:"item_key"`
		ItemID  string `json:"item_id"`
		Version int    `json:"version"`
	}
	if err := json.Unmarshal(out.Bytes(), &vector); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(vector.ItemKey) != 64 {
		t.Fatalf("item key hex length = %d, want 64", len(vector.ItemKey))
	}
	if vector.ItemID != "item-42" || vector.Version != 1 {
		t.Fatalf("vector = %+v, want item-42 v1", vector)
	}

	// Same inputs, same vector.
	var again bytes.Buffer
	if err := run([]string{"testhelper", "derive-item", accountKey, "item-42", "password", "1"}, &again); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !bytes.Equal(out.Bytes(), again.Bytes()) {
		t.Fatal("derive-item is not deterministic")
	}
}

func TestEncryptRoundtripVector(t *testing.T) {
	key := hex.EncodeToString(bytes.Repeat([]byte{0x22}, 32))

	var out bytes.Buffer
	if err := run([]string{"testhelper", "encrypt-roundtrip", key, "hello vault"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var vector struct {
		Algorithm string `json:"algorithm"`
		Roundtrip bool   `json:"roundtrip"`
	}
	if err := json.Unmarshal(out.Bytes(), &vector); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !vector.Roundtrip {
		t.Fatal("round trip failed")
	}
	if vector.Algorithm != "aes-256-gcm" && vector.Algorithm != "xchacha20-poly1305" {
		t.Fatalf("unexpected algorithm %q", vector.Algorithm)
	}
}

func TestSRPRegisterVector(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"testhelper", "srp-register", "alice@example.com", "secret"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var vector struct {
		Salt     string `json:"salt"`
		Verifier string `json:"verifier"`
	}
	if err := json.Unmarshal(out.Bytes(), &vector); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(vector.Salt) != 64 {
		t.Fatalf("salt hex length = %d, want 64", len(vector.Salt))
	}
	if len(vector.Verifier) != 512 {
		t.Fatalf("verifier hex length = %d, want 512", len(vector.Verifier))
	}
}
