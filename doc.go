// Package zerovault is the client-side cryptographic core of a zero-knowledge
// vault: key derivation, authenticated encryption, chunked encryption of large
// payloads, and SRP-6a password authentication. Plaintext and password-derived
// keys never need to leave the process; a server integrating with this package
// stores only ciphertext, salts and verifiers.
//
// # Key hierarchy
//
// Everything descends from a master key stretched out of the user's password
// with Argon2id:
//
//	master, err := zerovault.DeriveMasterKey(password, salt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer master.Destroy()
//
//	account, err := zerovault.DeriveAccountKey(master.Key, accountSalt)
//	itemKey, err := zerovault.DeriveItemKey(account, "item-42", "password", 1)
//
// Purpose-scoped HKDF-SHA-256 expansion keeps every derived key
// cryptographically independent: a vault key cannot stand in for an item key,
// and rotating an item's version yields an unrelated key.
//
// # Encryption
//
// Encrypt seals a payload into a self-describing envelope with AES-256-GCM or
// XChaCha20-Poly1305, picked by hardware probe unless forced:
//
//	env, err := zerovault.Encrypt(plaintext, itemKey, zerovault.WithPurpose("note"))
//	out, err := zerovault.Decrypt(env, itemKey, zerovault.WithExpectedPurpose("note"))
//
// Payloads above a few MiB go through the chunked pipeline (EncryptInChunks,
// NewChunkEncryptor) which derives an independent key per chunk and binds each
// chunk to its position.
//
// # Authentication
//
// The srp surface (RegisterVerifier, NewSRPServer, NewSRPClient) implements
// SRP-6a over the RFC 5054 2048-bit group, so the server can verify the
// password without ever receiving it.
package zerovault
