package kdf

import (
	"fmt"
	"strconv"
)

// VaultPurpose scopes a vault key to one use.
type VaultPurpose string

const (
	// PurposeItems keys encrypt vault item payloads.
	PurposeItems VaultPurpose = "items"
	// PurposeMetadata keys encrypt vault metadata.
	PurposeMetadata VaultPurpose = "metadata"
	// PurposeSharing keys protect shared-vault material.
	PurposeSharing VaultPurpose = "sharing"
)

func (p VaultPurpose) valid() bool {
	switch p {
	case PurposeItems, PurposeMetadata, PurposeSharing:
		return true
	}
	return false
}

// checkAncestor enforces the fixed cascade key size.
func checkAncestor(key []byte) error {
	if len(key) != KeySize {
		return fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}
	return nil
}

func checkVersion(version int) error {
	if version < MinVersion || version > MaxVersion {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidVersion, version, MinVersion, MaxVersion)
	}
	return nil
}

// DeriveAccountKey derives the account root key from master key material.
// The account key is the ancestor of every vault, item and sharing key.
func DeriveAccountKey(masterKey, salt []byte) ([]byte, error) {
	if err := checkAncestor(masterKey); err != nil {
		return nil, err
	}
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidSalt, len(salt), MinSaltSize)
	}
	return Expand(masterKey, salt, []byte("account-key"), KeySize)
}

// DeriveVaultKey derives a purpose-scoped key for one vault.
func DeriveVaultKey(accountKey []byte, vaultID string, purpose VaultPurpose) ([]byte, error) {
	if err := checkAncestor(accountKey); err != nil {
		return nil, err
	}
	if vaultID == "" {
		return nil, fmt.Errorf("%w: vault ID", ErrInvalidIdentifier)
	}
	if !purpose.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPurpose, purpose)
	}

	salt := contextSalt("vault-salt:" + vaultID)
	info := "vault-key:" + string(purpose) + ":" + vaultID
	return Expand(accountKey, salt, []byte(info), KeySize)
}

// DeriveItemKey derives the encryption key for one vault item. The version
// component enables rotation: bumping it yields an independent key without
// touching the ancestor.
func DeriveItemKey(accountKey []byte, itemID, itemType string, version int) ([]byte, error) {
	if err := checkAncestor(accountKey); err != nil {
		return nil, err
	}
	if itemID == "" || itemType == "" {
		return nil, fmt.Errorf("%w: item ID and type", ErrInvalidIdentifier)
	}
	if err := checkVersion(version); err != nil {
		return nil, err
	}

	salt := contextSalt("item-salt:" + itemType + ":" + itemID)
	info := "item-key:" + itemType + ":encryption:" + itemID + ":v" + strconv.Itoa(version)
	return Expand(accountKey, salt, []byte(info), KeySize)
}

// DeriveFieldKey derives a key for a single field of an item, so individual
// fields (password, notes, TOTP seed) can be encrypted independently.
func DeriveFieldKey(itemKey []byte, fieldName, fieldType string) ([]byte, error) {
	if err := checkAncestor(itemKey); err != nil {
		return nil, err
	}
	if fieldName == "" || fieldType == "" {
		return nil, fmt.Errorf("%w: field name and type", ErrInvalidIdentifier)
	}

	salt := contextSalt("field-salt:" + fieldType + ":" + fieldName)
	info := "field-key:" + fieldType + ":" + fieldName
	return Expand(itemKey, salt, []byte(info), KeySize)
}

// DeriveChunkKey derives the key for chunk index of totalChunks. Every chunk
// of a large payload is encrypted under its own key.
func DeriveChunkKey(itemKey []byte, index, totalChunks int) ([]byte, error) {
	if err := checkAncestor(itemKey); err != nil {
		return nil, err
	}
	if totalChunks < 1 {
		return nil, fmt.Errorf("%w: total chunks %d", ErrInvalidIdentifier, totalChunks)
	}
	if index < 0 || index >= totalChunks {
		return nil, fmt.Errorf("%w: chunk index %d of %d", ErrInvalidIdentifier, index, totalChunks)
	}

	position := strconv.Itoa(index) + ":" + strconv.Itoa(totalChunks)
	salt := contextSalt("chunk-salt:" + position)
	info := "chunk-key:encryption:" + position
	return Expand(itemKey, salt, []byte(info), KeySize)
}

// DeriveSharingKey derives the key protecting an item shared with one
// recipient.
func DeriveSharingKey(accountKey []byte, recipientID, sharedItemID string) ([]byte, error) {
	if err := checkAncestor(accountKey); err != nil {
		return nil, err
	}
	if recipientID == "" || sharedItemID == "" {
		return nil, fmt.Errorf("%w: recipient and item IDs", ErrInvalidIdentifier)
	}

	salt := contextSalt("sharing-salt:" + recipientID + ":" + sharedItemID)
	info := "sharing-key:" + recipientID + ":" + sharedItemID
	return Expand(accountKey, salt, []byte(info), KeySize)
}

// DeriveMultiple derives one key per purpose from a single ancestor and salt.
// Each purpose is folded into its own info string, so the outputs are
// pairwise independent.
func DeriveMultiple(ancestor, salt []byte, purposes []string, length int) (map[string][]byte, error) {
	if err := checkAncestor(ancestor); err != nil {
		return nil, err
	}
	if len(purposes) == 0 {
		return nil, fmt.Errorf("%w: no purposes", ErrInvalidIdentifier)
	}

	keys := make(map[string][]byte, len(purposes))
	for _, purpose := range purposes {
		if purpose == "" {
			return nil, fmt.Errorf("%w: empty purpose", ErrInvalidIdentifier)
		}
		key, err := Expand(ancestor, salt, []byte("multi-key:"+purpose), length)
		if err != nil {
			return nil, err
		}
		keys[purpose] = key
	}
	return keys, nil
}
