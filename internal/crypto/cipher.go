// Package crypto implements the field-level cipher of the vault: single
// string values are sealed with an AEAD primitive and encoded as base64
// tokens suitable for storage in a text column.
//
// Every token is bound to its owning record through AEAD associated data
// (the record's binding field, e.g. a website's domain). Decrypting a token
// with different associated data fails, so ciphertext cannot be silently
// reattributed from one record to another.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// EncryptField seals plaintext with the given AEAD primitive and returns a
// storable token: base64(nonce || ciphertext || tag), standard encoding,
// no line wraps.
//
// associatedData is mixed into the authentication tag as UTF-8 bytes. An
// absent value must be passed as the empty string, never omitted: encryption
// and decryption have to use byte-identical associated data.
func EncryptField(aead cipher.AEAD, plaintext, associatedData string) (string, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	blob := aead.Seal(nonce, nonce, []byte(plaintext), []byte(associatedData))
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptField reverses EncryptField. The associatedData must match the value
// supplied at encryption time byte for byte.
//
// All failure modes collapse into [ErrDecryptionFailed]; see that error's
// documentation for the rationale.
func DecryptField(aead cipher.AEAD, token, associatedData string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, ct := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ct, []byte(associatedData))
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
