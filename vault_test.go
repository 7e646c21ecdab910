package zerovault

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// fastParams keeps Argon2id cheap enough for tests while staying in range.
func fastParams() KeyDerivationParams {
	p := DefaultParams()
	p.TimeCost = 1
	p.MemoryKB = 8 * 1024
	return p
}

func TestPasswordToItemRoundTrip(t *testing.T) {
	salt := make([]byte, 32)

	master, err := DeriveMasterKey([]byte("p@ssw0rd-Test!2025"), salt)
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	defer master.Destroy()

	if len(master.Key) != KeySize {
		t.Fatalf("master key length = %d, want %d", len(master.Key), KeySize)
	}
	if master.Function != KDFArgon2id {
		t.Fatalf("master function = %q, want %q", master.Function, KDFArgon2id)
	}

	itemKey, err := DeriveItemKey(master.Key, "item-42", "password", 1)
	if err != nil {
		t.Fatalf("DeriveItemKey() error = %v", err)
	}
	defer WipeKey(itemKey)

	env, err := Encrypt([]byte("hello vault"), itemKey)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	out, err := Decrypt(env, itemKey)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if string(out) != "hello vault" {
		t.Fatalf("Decrypt() = %q, want %q", out, "hello vault")
	}
}

func TestDeriveMasterKeyDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, 32)

	first, err := DeriveMasterKey([]byte("secret"), salt, WithParams(fastParams()))
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	defer first.Destroy()
	second, err := DeriveMasterKey([]byte("secret"), salt, WithParams(fastParams()))
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	defer second.Destroy()

	if !bytes.Equal(first.Key, second.Key) {
		t.Fatal("same inputs produced different master keys")
	}
}

func TestDeriveMasterKeyFallbackIsObservable(t *testing.T) {
	salt := bytes.Repeat([]byte{0x01}, 32)

	var observed KDFFunction
	master, err := DeriveMasterKey([]byte("secret"), salt,
		WithParams(fastParams()),
		WithFallbackKDF(),
		WithKDFObserver(func(fn KDFFunction, _ KeyDerivationParams, _ time.Duration) {
			observed = fn
		}),
	)
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	defer master.Destroy()

	if master.Function != KDFFallbackPBKDF2 {
		t.Fatalf("material function = %q, want %q", master.Function, KDFFallbackPBKDF2)
	}
	if observed != KDFFallbackPBKDF2 {
		t.Fatalf("observer saw %q, want %q", observed, KDFFallbackPBKDF2)
	}
}

func TestMasterKeyMaterialDestroy(t *testing.T) {
	salt := bytes.Repeat([]byte{0x02}, 32)
	master, err := DeriveMasterKey([]byte("secret"), salt, WithParams(fastParams()))
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}

	master.Destroy()
	for _, b := range master.Key {
		if b != 0 {
			t.Fatal("Destroy() left key bytes non-zero")
		}
	}
	for _, b := range master.Salt {
		if b != 0 {
			t.Fatal("Destroy() left salt bytes non-zero")
		}
	}
}

func TestCascadeDomainSeparation(t *testing.T) {
	account := bytes.Repeat([]byte{0x11}, KeySize)

	itemsKey, err := DeriveVaultKey(account, "vault-1", VaultPurposeItems)
	if err != nil {
		t.Fatalf("DeriveVaultKey(items) error = %v", err)
	}
	metaKey, err := DeriveVaultKey(account, "vault-1", VaultPurposeMetadata)
	if err != nil {
		t.Fatalf("DeriveVaultKey(metadata) error = %v", err)
	}
	if bytes.Equal(itemsKey, metaKey) {
		t.Fatal("different purposes produced the same vault key")
	}

	v1, err := DeriveItemKey(account, "item-1", "note", 1)
	if err != nil {
		t.Fatalf("DeriveItemKey(v1) error = %v", err)
	}
	v2, err := DeriveItemKey(account, "item-1", "note", 2)
	if err != nil {
		t.Fatalf("DeriveItemKey(v2) error = %v", err)
	}
	if bytes.Equal(v1, v2) {
		t.Fatal("different versions produced the same item key")
	}
}

func TestEncryptPurposeBinding(t *testing.T) {
	key := bytes.Repeat([]byte{0x22}, KeySize)

	env, err := Encrypt([]byte("payload"), key, WithPurpose("login-item"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := Decrypt(env, key, WithExpectedPurpose("login-item")); err != nil {
		t.Fatalf("Decrypt(matching purpose) error = %v", err)
	}
	if _, err := Decrypt(env, key, WithExpectedPurpose("other")); !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("Decrypt(wrong purpose) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecryptMaxAge(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, KeySize)

	env, err := Encrypt([]byte("payload"), key)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	env.Timestamp = env.Timestamp.Add(-time.Hour)

	if _, err := Decrypt(env, key, WithMaxAge(time.Minute)); !errors.Is(err, ErrDataExpired) {
		t.Fatalf("Decrypt() error = %v, want ErrDataExpired", err)
	}
	if _, err := Decrypt(env, key, WithMaxAge(2*time.Hour)); err != nil {
		t.Fatalf("Decrypt(within MaxAge) error = %v", err)
	}
}

func TestForceAlgorithmRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x44}, KeySize)

	for _, alg := range []Algorithm{AlgorithmAESGCM, AlgorithmXChaCha20} {
		t.Run(alg.String(), func(t *testing.T) {
			sel, err := ForceAlgorithm(alg)
			if err != nil {
				t.Fatalf("ForceAlgorithm() error = %v", err)
			}
			if sel.Algorithm != alg {
				t.Fatalf("selection algorithm = %v, want %v", sel.Algorithm, alg)
			}

			env, err := Encrypt([]byte("payload"), key, WithAlgorithm(alg))
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if env.Algorithm != alg {
				t.Fatalf("envelope algorithm = %v, want %v", env.Algorithm, alg)
			}
			if _, err := Decrypt(env, key); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
		})
	}
}

func TestChunkedRoundTrip(t *testing.T) {
	itemKey := bytes.Repeat([]byte{0x55}, KeySize)
	data := bytes.Repeat([]byte("large payload "), 5000)

	chunks, session, err := EncryptInChunks(data, itemKey, WithChunkSize(16*1024))
	if err != nil {
		t.Fatalf("EncryptInChunks() error = %v", err)
	}
	if want := ChunkCount(len(data), 16*1024); len(chunks) != want {
		t.Fatalf("chunk count = %d, want %d", len(chunks), want)
	}

	out, err := DecryptFromChunks(chunks, session, itemKey)
	if err != nil {
		t.Fatalf("DecryptFromChunks() error = %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("reassembled payload differs from input")
	}
}

func TestChunkedCorruptionReportsIndex(t *testing.T) {
	itemKey := bytes.Repeat([]byte{0x66}, KeySize)
	data := bytes.Repeat([]byte{0xab}, 3*1024)

	chunks, session, err := EncryptInChunks(data, itemKey, WithChunkSize(1024))
	if err != nil {
		t.Fatalf("EncryptInChunks() error = %v", err)
	}
	chunks[1].Envelope.Ciphertext[0] ^= 0xFF

	_, err = DecryptFromChunks(chunks, session, itemKey)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("DecryptFromChunks() error = %v, want ErrDecryptionFailed", err)
	}
	var chunkErr *ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("DecryptFromChunks() error = %T, want *ChunkError", err)
	}
	if chunkErr.Index != 1 {
		t.Fatalf("ChunkError.Index = %d, want 1", chunkErr.Index)
	}
}

func TestStreamingChunks(t *testing.T) {
	itemKey := bytes.Repeat([]byte{0x77}, KeySize)
	const chunkSize = 512
	plain := [][]byte{
		bytes.Repeat([]byte{1}, chunkSize),
		bytes.Repeat([]byte{2}, chunkSize),
		bytes.Repeat([]byte{3}, 100),
	}

	enc, err := NewChunkEncryptor(itemKey, len(plain), WithChunkSize(chunkSize))
	if err != nil {
		t.Fatalf("NewChunkEncryptor() error = %v", err)
	}
	var chunks []Chunk
	for _, p := range plain {
		chunk, err := enc.Next(p)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		chunks = append(chunks, *chunk)
	}
	if !enc.Done() {
		t.Fatal("encryptor not done after final chunk")
	}

	dec, err := NewChunkDecryptor(enc.Session(), itemKey)
	if err != nil {
		t.Fatalf("NewChunkDecryptor() error = %v", err)
	}
	var out []byte
	for _, chunk := range chunks {
		p, err := dec.Next(chunk)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		out = append(out, p...)
	}
	if want := bytes.Join(plain, nil); !bytes.Equal(out, want) {
		t.Fatal("streamed round trip differs from input")
	}
}

func TestSRPEndToEnd(t *testing.T) {
	reg, err := RegisterVerifier("alice@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("RegisterVerifier() error = %v", err)
	}

	server := NewSRPServer()
	challenge, err := server.NewChallenge("alice@example.com", reg.Salt, reg.Verifier)
	if err != nil {
		t.Fatalf("NewChallenge() error = %v", err)
	}

	client, err := NewSRPClient("alice@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("NewSRPClient() error = %v", err)
	}
	session, err := client.Prove(challenge.Salt, challenge.ServerPublic)
	if err != nil {
		t.Fatalf("Prove() error = %v", err)
	}
	defer session.Destroy()

	m2, err := server.Verify("alice@example.com", session.ClientPublic, session.ClientProof)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if err := session.VerifyServerProof(m2); err != nil {
		t.Fatalf("VerifyServerProof() error = %v", err)
	}
}

func TestNewRandomSalt(t *testing.T) {
	first, err := NewRandomSalt()
	if err != nil {
		t.Fatalf("NewRandomSalt() error = %v", err)
	}
	second, err := NewRandomSalt()
	if err != nil {
		t.Fatalf("NewRandomSalt() error = %v", err)
	}
	if len(first) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(first), SaltSize)
	}
	if bytes.Equal(first, second) {
		t.Fatal("two salts are identical")
	}
}
