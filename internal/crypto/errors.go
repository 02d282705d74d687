package crypto

import "errors"

// Sentinel errors returned by field cipher operations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrDecryptionFailed is returned for every failure mode of DecryptField:
	// malformed base64, truncated blob, authentication-tag mismatch, wrong key
	// or wrong associated data. The causes are deliberately not distinguished
	// to callers so a decryption failure cannot be used as an oracle.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionFailed is returned when a plaintext field cannot be sealed,
	// e.g. when the nonce cannot be drawn from the system entropy source.
	ErrEncryptionFailed = errors.New("encryption failed")
)
