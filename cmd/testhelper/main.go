// Command testhelper emits deterministic cryptographic vectors as JSON, so
// other implementations of the vault core can be checked against this one.
//
// Inputs come from arguments and environment variables; a .env file in the
// working directory is loaded when present.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	zerovault "github.com/zerovault/core-go"
)

func run(args []string, stdout io.Writer) error {
	// Optional; absence of a .env file is not an error.
	_ = godotenv.Load()

	if len(args) < 2 {
		return fmt.Errorf("usage: testhelper <derive-master|derive-item|encrypt-roundtrip|srp-register> [args]")
	}

	switch args[1] {
	case "derive-master":
		return deriveMaster(stdout)
	case "derive-item":
		if len(args) < 5 {
			return fmt.Errorf("usage: testhelper derive-item <account-key-hex> <item-id> <item-type> [version]")
		}
		version := 1
		if len(args) > 5 {
			v, err := strconv.Atoi(args[5])
			if err != nil {
				return fmt.Errorf("parse version: %w", err)
			}
			version = v
		}
		return deriveItem(stdout, args[2], args[3], args[4], version)
	case "encrypt-roundtrip":
		if len(args) < 4 {
			return fmt.Errorf("usage: testhelper encrypt-roundtrip <key-hex> <plaintext>")
		}
		return encryptRoundtrip(stdout, args[2], args[3])
	case "srp-register":
		if len(args) < 4 {
			return fmt.Errorf("usage: testhelper srp-register <identity> <password>")
		}
		return srpRegister(stdout, args[2], args[3])
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// deriveMaster stretches ZEROVAULT_PASSWORD with ZEROVAULT_SALT_HEX and
// prints the resulting key, so two implementations fed the same inputs can be
// compared byte for byte.
func deriveMaster(stdout io.Writer) error {
	password := os.Getenv("ZEROVAULT_PASSWORD")
	if password == "" {
		return fmt.Errorf("ZEROVAULT_PASSWORD is required")
	}
	salt, err := hex.DecodeString(os.Getenv("ZEROVAULT_SALT_HEX"))
	if err != nil {
		return fmt.Errorf("decode ZEROVAULT_SALT_HEX: %w", err)
	}

	master, err := zerovault.DeriveMasterKey([]byte(password), salt)
	if err != nil {
		return fmt.Errorf("derive master key: %w", err)
	}
	defer master.Destroy()

	return emit(stdout, map[string]any{
		"key":         hex.EncodeToString(master.Key),
		"function":    string(master.Function),
		"time_cost":   master.Params.TimeCost,
		"memory_kb":   master.Params.MemoryKB,
		"parallelism": master.Params.Parallelism,
	})
}

func deriveItem(stdout io.Writer, accountKeyHex, itemID, itemType string, version int) error {
	accountKey, err := hex.DecodeString(accountKeyHex)
	if err != nil {
		return fmt.Errorf("decode account key: %w", err)
	}

	itemKey, err := zerovault.DeriveItemKey(accountKey, itemID, itemType, version)
	if err != nil {
		return fmt.Errorf("derive item key: %w", err)
	}
	defer zerovault.WipeKey(itemKey)

	return emit(stdout, map[string]any{
		"item_key": hex.EncodeToString(itemKey),
		"item_id":  itemID,
		"version":  version,
	})
}

// encryptRoundtrip seals and immediately opens a payload, printing the
// envelope fields. The ciphertext is fresh per run (random nonce); the
// round-trip result is what other implementations verify.
func encryptRoundtrip(stdout io.Writer, keyHex, plaintext string) error {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}

	env, err := zerovault.Encrypt([]byte(plaintext), key)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	out, err := zerovault.Decrypt(env, key)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	return emit(stdout, map[string]any{
		"algorithm":  env.Algorithm.String(),
		"nonce":      hex.EncodeToString(env.Nonce),
		"ciphertext": hex.EncodeToString(env.Ciphertext),
		"roundtrip":  string(out) == plaintext,
	})
}

func srpRegister(stdout io.Writer, identity, password string) error {
	reg, err := zerovault.RegisterVerifier(identity, password)
	if err != nil {
		return fmt.Errorf("register verifier: %w", err)
	}

	return emit(stdout, map[string]any{
		"salt":     hex.EncodeToString(reg.Salt),
		"verifier": hex.EncodeToString(reg.Verifier),
	})
}

func emit(stdout io.Writer, v any) error {
	if err := json.NewEncoder(stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
