package keystore

import "errors"

// Sentinel errors returned by the key manager. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotInitialized is returned by Primitive when the manager has not
	// completed a successful Init yet. The caller must initialize the key
	// material before requesting cipher operations.
	ErrNotInitialized = errors.New("keystore is not initialized")

	// ErrKeyStorageCorrupt indicates that a keyset blob exists on disk but
	// cannot be unwrapped under the current master secret (e.g. the OS
	// keyring entry was reset). Init recovers from this condition by
	// discarding the blob and generating a fresh key; every ciphertext
	// produced under the old key becomes permanently unreadable.
	ErrKeyStorageCorrupt = errors.New("key storage is corrupt")

	// ErrMasterSecretUnavailable is returned when the master secret can be
	// obtained neither from the OS keyring nor from the fallback file.
	ErrMasterSecretUnavailable = errors.New("master secret is unavailable")
)
