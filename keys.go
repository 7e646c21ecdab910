package zerovault

import (
	"crypto/rand"
	"time"

	"github.com/zerovault/core-go/internal/kdf"
	"github.com/zerovault/core-go/internal/wipe"
)

// KeySize is the length of every key in the derivation cascade.
const KeySize = kdf.KeySize

// SaltSize is the recommended salt length. Salts below MinSaltSize are
// rejected.
const (
	SaltSize    = kdf.SaltSize
	MinSaltSize = kdf.MinSaltSize
)

// VaultKeyPurpose scopes a vault key to one use.
type VaultKeyPurpose = kdf.VaultPurpose

const (
	// VaultPurposeItems keys encrypt vault item payloads.
	VaultPurposeItems = kdf.PurposeItems
	// VaultPurposeMetadata keys encrypt vault metadata.
	VaultPurposeMetadata = kdf.PurposeMetadata
	// VaultPurposeSharing keys protect shared-vault material.
	VaultPurposeSharing = kdf.PurposeSharing
)

// MasterKeyMaterial is the outcome of stretching a password. It is held in
// client memory only and must be destroyed as soon as the account key has
// been derived from it.
type MasterKeyMaterial struct {
	// Key is the stretched master key.
	Key []byte
	// Salt is the salt the key was derived with.
	Salt []byte
	// Params are the cost parameters used.
	Params KeyDerivationParams
	// Function records which KDF produced the key. A fallback derivation is
	// always visible here.
	Function KDFFunction
	// DerivationTime is how long the derivation took.
	DerivationTime time.Duration
}

// Destroy zeroizes the key material. The material is unusable afterwards.
func (m *MasterKeyMaterial) Destroy() {
	wipe.All(m.Key, m.Salt)
}

// NewRandomSalt returns a fresh 32-byte salt from the system CSPRNG.
func NewRandomSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveMasterKey stretches a password into master key material with Argon2id
// (or PBKDF2-SHA-256 via WithFallbackKDF). Deterministic: the same password,
// salt and parameters always produce the same key. Expect tens to hundreds of
// milliseconds; callers with an event loop should run it off it.
func DeriveMasterKey(password, salt []byte, opts ...DeriveOption) (*MasterKeyMaterial, error) {
	cfg := deriveConfig{
		params:   DefaultParams(),
		function: KDFArgon2id,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	key, elapsed, err := kdf.DeriveMaster(password, salt, cfg.params, cfg.function, cfg.observer)
	if err != nil {
		return nil, wrapDerivation("master", err)
	}

	return &MasterKeyMaterial{
		Key:            key,
		Salt:           append([]byte(nil), salt...),
		Params:         cfg.params,
		Function:       cfg.function,
		DerivationTime: elapsed,
	}, nil
}

// Expand derives length bytes of keying material from ikm with HKDF-SHA-256.
// Different info strings yield cryptographically independent outputs.
func Expand(ikm, salt, info []byte, length int) ([]byte, error) {
	key, err := kdf.Expand(ikm, salt, info, length)
	return key, wrapDerivation("expand", err)
}

// DeriveAccountKey derives the account root key from a master key. Every
// vault, item and sharing key descends from it.
func DeriveAccountKey(masterKey, salt []byte) ([]byte, error) {
	key, err := kdf.DeriveAccountKey(masterKey, salt)
	return key, wrapDerivation("cascade", err)
}

// DeriveVaultKey derives a purpose-scoped key for one vault. Keys for
// different purposes of the same vault are independent.
func DeriveVaultKey(accountKey []byte, vaultID string, purpose VaultKeyPurpose) ([]byte, error) {
	key, err := kdf.DeriveVaultKey(accountKey, vaultID, purpose)
	return key, wrapDerivation("cascade", err)
}

// DeriveItemKey derives the encryption key for one vault item. Bumping the
// version yields an independent key, enabling rotation without re-deriving
// ancestors.
func DeriveItemKey(accountKey []byte, itemID, itemType string, version int) ([]byte, error) {
	key, err := kdf.DeriveItemKey(accountKey, itemID, itemType, version)
	return key, wrapDerivation("cascade", err)
}

// DeriveFieldKey derives a key for a single field of an item.
func DeriveFieldKey(itemKey []byte, fieldName, fieldType string) ([]byte, error) {
	key, err := kdf.DeriveFieldKey(itemKey, fieldName, fieldType)
	return key, wrapDerivation("cascade", err)
}

// DeriveChunkKey derives the key for one chunk of a large payload. The key is
// bound to both the chunk's index and the total chunk count.
func DeriveChunkKey(itemKey []byte, index, totalChunks int) ([]byte, error) {
	key, err := kdf.DeriveChunkKey(itemKey, index, totalChunks)
	return key, wrapDerivation("cascade", err)
}

// DeriveSharingKey derives the key protecting an item shared with one
// recipient.
func DeriveSharingKey(accountKey []byte, recipientID, sharedItemID string) ([]byte, error) {
	key, err := kdf.DeriveSharingKey(accountKey, recipientID, sharedItemID)
	return key, wrapDerivation("cascade", err)
}

// DeriveMultiple derives one key per purpose from a single ancestor; the
// outputs are pairwise independent.
func DeriveMultiple(ancestor, salt []byte, purposes []string, length int) (map[string][]byte, error) {
	keys, err := kdf.DeriveMultiple(ancestor, salt, purposes, length)
	return keys, wrapDerivation("cascade", err)
}

// WipeKey zeroizes key material in place.
func WipeKey(key []byte) {
	wipe.Bytes(key)
}
